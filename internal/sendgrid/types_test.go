package sendgrid

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/ignite/sendgrid-client/internal/sgapi"
)

func TestEmailEncodesDatesAsEpochSeconds(t *testing.T) {
	sendAt := sgapi.NewUnixTime(time.Date(2024, 4, 12, 20, 43, 59, 0, time.UTC))
	email := &Email[NoTemplateData]{
		Personalizations: []Personalization[NoTemplateData]{
			{To: []EmailAddress{{Email: "to@example.com"}}},
		},
		From:   EmailAddress{Email: "from@example.com"},
		SendAt: &sendAt,
	}

	data, err := json.Marshal(email)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if !strings.Contains(string(data), `"send_at":1712954639`) {
		t.Errorf("encoded email = %s, want send_at as epoch seconds", data)
	}
	if strings.Contains(string(data), "2024-04-12") {
		t.Errorf("encoded email = %s, must not contain ISO-8601 dates", data)
	}

	// Round trip: the date must survive decode/encode byte for byte
	var decoded Email[NoTemplateData]
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	again, err := json.Marshal(&decoded)
	if err != nil {
		t.Fatalf("re-Marshal returned error: %v", err)
	}
	if string(again) != string(data) {
		t.Errorf("round trip changed encoding:\n got %s\nwant %s", again, data)
	}
}

func TestPersonalizationDynamicTemplateData(t *testing.T) {
	type orderData struct {
		OrderID string  `json:"order_id"`
		Total   float64 `json:"total"`
	}

	email := &Email[orderData]{
		Personalizations: []Personalization[orderData]{
			{
				To:                  []EmailAddress{{Email: "to@example.com"}},
				DynamicTemplateData: &orderData{OrderID: "A-1", Total: 9.99},
			},
		},
		From:       EmailAddress{Email: "from@example.com"},
		TemplateID: "d-abc123",
	}

	data, err := json.Marshal(email)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	for _, want := range []string{`"dynamic_template_data":{"order_id":"A-1","total":9.99}`, `"template_id":"d-abc123"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded email = %s, missing %s", data, want)
		}
	}
}

func TestEmailOmitsUnsetOptionalFields(t *testing.T) {
	email := &Email[NoTemplateData]{
		Personalizations: []Personalization[NoTemplateData]{
			{To: []EmailAddress{{Email: "to@example.com"}}},
		},
		From: EmailAddress{Email: "from@example.com"},
	}

	data, err := json.Marshal(email)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	for _, absent := range []string{"reply_to", "attachments", "send_at", "mail_settings", "tracking_settings", "asm", "batch_id"} {
		if strings.Contains(string(data), absent) {
			t.Errorf("encoded email = %s, should omit unset %s", data, absent)
		}
	}
}

func TestMailSettingsWireShape(t *testing.T) {
	email := &Email[NoTemplateData]{
		Personalizations: []Personalization[NoTemplateData]{
			{To: []EmailAddress{{Email: "to@example.com"}}},
		},
		From: EmailAddress{Email: "from@example.com"},
		MailSettings: &MailSettings{
			SandboxMode: &Setting{Enable: true},
			Footer:      &Footer{Enable: true, Text: "bye"},
		},
		TrackingSettings: &TrackingSettings{
			ClickTracking: &ClickTracking{Enable: true, EnableText: true},
			OpenTracking:  &OpenTracking{Enable: true},
		},
	}

	data, err := json.Marshal(email)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	for _, want := range []string{
		`"sandbox_mode":{"enable":true}`,
		`"footer":{"enable":true,"text":"bye"}`,
		`"click_tracking":{"enable":true,"enable_text":true}`,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded email = %s, missing %s", data, want)
		}
	}
}
