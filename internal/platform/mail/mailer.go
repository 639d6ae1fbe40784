// Package mail はSMTP経由の検証コードメール送信を提供します。
package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"os"
	"time"
)

// Sender は検証コード・パスワードリセットコードのメールを送信します。
// Hostが空の場合、送信内容を標準出力に出力します（ローカル開発用）。
type Sender struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

// NewSenderFromEnv は環境変数 MAIL_HOST/MAIL_PORT/MAIL_USERNAME/MAIL_PASSWORD から
// Senderを生成します。MAIL_HOSTが未設定の場合はモック出力モードになります。
func NewSenderFromEnv() *Sender {
	username := os.Getenv("MAIL_USERNAME")
	port := os.Getenv("MAIL_PORT")
	if port == "" {
		port = "587"
	}
	return &Sender{
		Host:     os.Getenv("MAIL_HOST"),
		Port:     port,
		Username: username,
		Password: os.Getenv("MAIL_PASSWORD"),
		From:     username,
	}
}

const codeTemplate = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #ddd; border-radius: 5px; }
        .code { font-size: 2em; letter-spacing: 0.3em; text-align: center; padding: 10px; background-color: #f5f5f5; border-radius: 4px; }
        .footer { margin-top: 20px; font-size: 0.8em; color: #777; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <p>Your verification code is:</p>
        <p class="code">{{.Code}}</p>
        <p>It expires in {{.Minutes}} minutes.</p>
        <div class="footer">
            <p>If you didn't request this code, you can safely ignore this email.</p>
        </div>
    </div>
</body>
</html>
`

// SendCode は6桁の検証コードを宛先にメールします。
func (s *Sender) SendCode(to, code string, ttl time.Duration) error {
	t, err := template.New("code").Parse(codeTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var body bytes.Buffer
	data := map[string]any{"Code": code, "Minutes": int(ttl.Minutes())}
	if err := t.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	headers := make(map[string]string)
	headers["From"] = s.From
	headers["To"] = to
	headers["Subject"] = "Your verification code"
	headers["MIME-Version"] = "1.0"
	headers["Content-Type"] = "text/html; charset=\"UTF-8\""

	message := ""
	for k, v := range headers {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body.String()

	// SMTPが未設定の場合はコードを標準出力に出す
	if s.Host == "" {
		fmt.Println("==================================================")
		fmt.Printf("MOCK EMAIL TO: %s\n", to)
		fmt.Printf("VERIFICATION CODE: %s (expires in %d minutes)\n", code, int(ttl.Minutes()))
		fmt.Println("==================================================")
		return nil
	}

	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
	addr := fmt.Sprintf("%s:%s", s.Host, s.Port)
	return smtp.SendMail(addr, auth, s.From, []string{to}, []byte(message))
}
