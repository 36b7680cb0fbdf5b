package service

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/RoyceAzure/lab/kitchen/internal/domain/model"
	"github.com/RoyceAzure/lab/kitchen/internal/infra/mail"
)

type IMailService interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
	SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
}

// OTPEmailData 驗證碼信件
type OTPEmailData struct {
	Email         string
	Name          string
	Code          string
	Action        string // ex: verify your email
	ExpiryMinutes int
	CompanyName   string
}

type WelcomeEmailData struct {
	Email        string
	Name         string
	ReferralCode string
	CompanyName  string
}

type OrderConfirmationData struct {
	Email       string
	Name        string
	Order       *model.Order
	CompanyName string
}

type MailService struct {
	sender      mail.EmailSender
	companyName string
	templates   *template.Template
}

// NewMailService 初始化 mail service
// 參數:
//
//	sender: 實際寄信的實作, 未設定smtp時可用 mail.LogSender
//	companyName: 信件內顯示的公司名稱
func NewMailService(sender mail.EmailSender, companyName string) *MailService {
	if isNil(sender) {
		panic("NewMailService: sender cannot be nil")
	}
	return &MailService{
		sender:      sender,
		companyName: companyName,
		templates:   template.Must(template.New("mail").Parse(mailTemplates)),
	}
}

var _ IMailService = (*MailService)(nil)

func (m *MailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	data.CompanyName = m.companyName
	html, err := m.render("otp", data)
	if err != nil {
		return err
	}
	return m.sender.SendEmail(fmt.Sprintf("%s - verification code", m.companyName), html, []string{data.Email}, nil, nil, nil)
}

func (m *MailService) SendWelcomeEmail(ctx context.Context, data WelcomeEmailData) error {
	data.CompanyName = m.companyName
	html, err := m.render("welcome", data)
	if err != nil {
		return err
	}
	return m.sender.SendEmail(fmt.Sprintf("Welcome to %s", m.companyName), html, []string{data.Email}, nil, nil, nil)
}

func (m *MailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	data.CompanyName = m.companyName
	html, err := m.render("order_confirmation", data)
	if err != nil {
		return err
	}
	return m.sender.SendEmail(fmt.Sprintf("Order %s received", data.Order.OrderNumber), html, []string{data.Email}, nil, nil, nil)
}

func (m *MailService) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := m.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("執行 HTML 模板失敗: %w", err)
	}
	return buf.String(), nil
}

// HTML 模板
const mailTemplates = `
{{define "header"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #d35400; color: white; padding: 20px; text-align: center; }
        .content { padding: 30px; background-color: #f9f9f9; }
        .code { font-size: 32px; letter-spacing: 8px; font-weight: bold; text-align: center; }
        .footer { padding: 20px; text-align: center; font-size: 12px; color: #666; }
        table { width: 100%; border-collapse: collapse; }
        td, th { padding: 6px; border-bottom: 1px solid #ddd; text-align: left; }
    </style>
</head>
<body>
<div class="container">{{end}}

{{define "footer"}}
    <div class="footer">
        <p>This email was sent automatically, please do not reply.</p>
        <p>&copy; {{.CompanyName}}</p>
    </div>
</div>
</body>
</html>{{end}}

{{define "otp"}}{{template "header" .}}
    <div class="header"><h1>{{.CompanyName}}</h1></div>
    <div class="content">
        <p>Hi {{.Name}},</p>
        <p>Use the code below to {{.Action}}:</p>
        <p class="code">{{.Code}}</p>
        <p>This code expires in {{.ExpiryMinutes}} minutes. If you did not request it, you can ignore this email.</p>
    </div>
{{template "footer" .}}{{end}}

{{define "welcome"}}{{template "header" .}}
    <div class="header"><h1>Welcome to {{.CompanyName}}</h1></div>
    <div class="content">
        <p>Hi {{.Name}}, your email has been verified.</p>
        <p>Share your referral code <strong>{{.ReferralCode}}</strong> with friends.</p>
    </div>
{{template "footer" .}}{{end}}

{{define "order_confirmation"}}{{template "header" .}}
    <div class="header"><h1>Order {{.Order.OrderNumber}}</h1></div>
    <div class="content">
        <p>Hi {{.Name}}, we have received your order.</p>
        <table>
            <tr><th>Item</th><th>Qty</th><th>Price</th></tr>
            {{range .Order.Items}}<tr><td>{{.FoodName}}</td><td>{{.Quantity}}</td><td>{{.TotalPrice.StringFixed 2}}</td></tr>
            {{end}}
        </table>
        <p>Subtotal: {{.Order.Subtotal.StringFixed 2}}</p>
        <p>Service fee: {{.Order.ServiceFee.StringFixed 2}}</p>
        <p>Delivery fee: {{.Order.DeliveryFee.StringFixed 2}}</p>
        <p>Discount: {{.Order.Discount.StringFixed 2}}</p>
        <p>Tax: {{.Order.Tax.StringFixed 2}}</p>
        <p><strong>Total: {{.Order.Total.StringFixed 2}}</strong></p>
    </div>
{{template "footer" .}}{{end}}
`
