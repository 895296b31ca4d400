package smtp

import "io"

// Client описывает минимальный контракт SMTP-клиента,
// достаточный для отправки письма. Позволяет подменять клиент в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}
