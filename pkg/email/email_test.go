package email

import (
	"errors"
	"strings"
	"testing"

	"gopkg.in/gomail.v2"
)

type captureSender struct {
	sent []*gomail.Message
	err  error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	c.sent = append(c.sent, m...)
	return c.err
}

func TestSendCommissionStatement(t *testing.T) {
	sender := &captureSender{}
	svc := NewEmailServiceWithSender(EmailConfig{FromEmail: "noreply@gym.test", FromName: "Gym", AppName: "Gym"}, sender)

	err := svc.SendCommissionStatement("sara@gym.test", CommissionStatement{
		StaffName:  "Sara",
		Domain:     "pt",
		Method:     "revenue",
		Income:     "2550.00",
		Percentage: "25",
		Commission: "637.50",
	})
	if err != nil {
		t.Fatalf("SendCommissionStatement: %v", err)
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}

	if got := sender.sent[0].GetHeader("To"); len(got) != 1 || got[0] != "sara@gym.test" {
		t.Errorf("To = %v, want [sara@gym.test]", got)
	}

	if subj := sender.sent[0].GetHeader("Subject"); len(subj) != 1 || !strings.Contains(subj[0], "Commission statement") {
		t.Errorf("Subject = %v", subj)
	}
}

func TestRenderStatement(t *testing.T) {
	svc := NewEmailServiceWithSender(EmailConfig{AppName: "Gym"}, &captureSender{})
	body, err := svc.render(CommissionStatement{StaffName: "Sara", Commission: "637.50"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Sara", "637.50", "Gym"} {
		if !strings.Contains(body, want) {
			t.Errorf("body does not contain %q", want)
		}
	}
}

func TestSendCommissionStatementWithoutSMTP(t *testing.T) {
	svc := NewEmailService(EmailConfig{})
	if err := svc.SendCommissionStatement("a@b.c", CommissionStatement{}); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}
