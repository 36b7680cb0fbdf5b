package mail

import (
	"fmt"
	"net/smtp"

	"github.com/jordan-wright/email"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type EmailSender interface {
	SendEmail(
		subject string,
		content string,
		to []string,
		cc []string,
		bcc []string,
		attachFiles []string,
	) error
}

// SMTPSender 使用 PLAIN auth 寄送 html 郵件
type SMTPSender struct {
	name              string
	fromEmailAddress  string
	fromEmailPassword string
	host              string
	port              int
}

// NewSMTPSender
// 參數:
//
//	name: 寄件者屬名
//	fromEmailAddress: 寄件者郵件地址
//	fromEmailPassword: 寄件者郵件密碼或應用程式密碼
//	host, port: smtp server
func NewSMTPSender(name, fromEmailAddress, fromEmailPassword, host string, port int) *SMTPSender {
	return &SMTPSender{
		name:              name,
		fromEmailAddress:  fromEmailAddress,
		fromEmailPassword: fromEmailPassword,
		host:              host,
		port:              port,
	}
}

func (s *SMTPSender) SendEmail(subject, content string, to, cc, bcc, attachFiles []string) error {
	e := email.NewEmail()
	e.From = fmt.Sprintf("%s <%s>", s.name, s.fromEmailAddress)
	e.Subject = subject
	e.HTML = []byte(content)
	e.To = to
	e.Cc = cc
	e.Bcc = bcc

	for _, f := range attachFiles {
		if _, err := e.AttachFile(f); err != nil {
			return errors.Wrapf(err, "attach file %s", f)
		}
	}

	auth := smtp.PlainAuth("", s.fromEmailAddress, s.fromEmailPassword, s.host)
	return errors.Wrap(e.Send(fmt.Sprintf("%s:%d", s.host, s.port), auth), "send email")
}

// LogSender 未設定smtp帳號時使用, 只記錄log
type LogSender struct{}

func NewLogSender() *LogSender {
	return &LogSender{}
}

func (s *LogSender) SendEmail(subject, content string, to, cc, bcc, attachFiles []string) error {
	log.Info().Str("subject", subject).Strs("to", to).Int("size", len(content)).Msg("email not sent, smtp is not configured")
	return nil
}

var (
	_ EmailSender = (*SMTPSender)(nil)
	_ EmailSender = (*LogSender)(nil)
)
