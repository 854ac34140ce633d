package sendgrid

import (
	"github.com/ignite/sendgrid-client/internal/sgapi"
)

// EmailAddress is a single addressee: the address itself plus an
// optional display name.
type EmailAddress struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Content is one body part of an email: a mime type ("text/plain",
// "text/html") and the content of that type.
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Attachment is a file attached to an email. Content is base64
// encoded. ContentID is used when Disposition is "inline" so the file
// can be referenced from the email body.
type Attachment struct {
	Content     string `json:"content"`
	Type        string `json:"type,omitempty"`
	Filename    string `json:"filename"`
	Disposition string `json:"disposition,omitempty"`
	ContentID   string `json:"content_id,omitempty"`
}

// SuppressionGroup references an unsubscribe group for this email and
// the groups to display on the unsubscribe preferences page.
type SuppressionGroup struct {
	GroupID         int   `json:"group_id"`
	GroupsToDisplay []int `json:"groups_to_display,omitempty"`
}

// Setting is a single on/off mail setting.
type Setting struct {
	Enable bool `json:"enable"`
}

// Footer is the default footer appended to every email.
type Footer struct {
	Enable bool   `json:"enable"`
	Text   string `json:"text,omitempty"`
	HTML   string `json:"html,omitempty"`
}

// MailSettings controls how the provider handles the email:
// suppression bypasses, footer, and sandbox mode.
type MailSettings struct {
	BypassListManagement   *Setting `json:"bypass_list_management,omitempty"`
	BypassSpamManagement   *Setting `json:"bypass_spam_management,omitempty"`
	BypassBounceManagement *Setting `json:"bypass_bounce_management,omitempty"`
	Footer                 *Footer  `json:"footer,omitempty"`
	SandboxMode            *Setting `json:"sandbox_mode,omitempty"`
}

// ClickTracking tracks whether a recipient clicked a link in the email.
type ClickTracking struct {
	Enable     bool `json:"enable"`
	EnableText bool `json:"enable_text"`
}

// OpenTracking tracks opens via a single-pixel image. SubstitutionTag
// marks where in the body the pixel is placed.
type OpenTracking struct {
	Enable          bool   `json:"enable"`
	SubstitutionTag string `json:"substitution_tag,omitempty"`
}

// SubscriptionTracking inserts a subscription management link at the
// bottom of the email.
type SubscriptionTracking struct {
	Enable          bool   `json:"enable"`
	Text            string `json:"text,omitempty"`
	HTML            string `json:"html,omitempty"`
	SubstitutionTag string `json:"substitution_tag,omitempty"`
}

// GoogleAnalytics enables tracking provided by Google Analytics.
type GoogleAnalytics struct {
	Enable      bool   `json:"enable"`
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMTerm     string `json:"utm_term,omitempty"`
	UTMContent  string `json:"utm_content,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
}

// TrackingSettings determines how recipient interactions with the
// email are tracked.
type TrackingSettings struct {
	ClickTracking        *ClickTracking        `json:"click_tracking,omitempty"`
	OpenTracking         *OpenTracking         `json:"open_tracking,omitempty"`
	SubscriptionTracking *SubscriptionTracking `json:"subscription_tracking,omitempty"`
	GAnalytics           *GoogleAnalytics      `json:"ganalytics,omitempty"`
}

// Personalization is an envelope within a send request: it defines one
// addressee group and any per-group overrides. T is the caller's
// dynamic template data type; it must serialize to JSON.
type Personalization[T any] struct {
	To                  []EmailAddress    `json:"to"`
	CC                  []EmailAddress    `json:"cc,omitempty"`
	BCC                 []EmailAddress    `json:"bcc,omitempty"`
	Subject             string            `json:"subject,omitempty"`
	Headers             map[string]string `json:"headers,omitempty"`
	Substitutions       map[string]string `json:"substitutions,omitempty"`
	DynamicTemplateData *T                `json:"dynamic_template_data,omitempty"`
	CustomArgs          map[string]string `json:"custom_args,omitempty"`
	SendAt              *sgapi.UnixTime   `json:"send_at,omitempty"`
}

// Email is a SendGrid v3 Mail Send request. At least one
// personalization is required, and the provider rejects a request that
// carries neither a template id nor content; neither rule is enforced
// locally, the provider reports them as structured errors.
//
// ReplyTo and ReplyToList are mutually exclusive on the provider side.
type Email[T any] struct {
	Personalizations []Personalization[T] `json:"personalizations"`
	From             EmailAddress         `json:"from"`
	ReplyTo          *EmailAddress        `json:"reply_to,omitempty"`
	ReplyToList      []EmailAddress       `json:"reply_to_list,omitempty"`
	Subject          string               `json:"subject,omitempty"`
	Content          []Content            `json:"content,omitempty"`
	Attachments      []Attachment         `json:"attachments,omitempty"`
	TemplateID       string               `json:"template_id,omitempty"`
	Headers          map[string]string    `json:"headers,omitempty"`
	Categories       []string             `json:"categories,omitempty"`
	CustomArgs       map[string]string    `json:"custom_args,omitempty"`
	SendAt           *sgapi.UnixTime      `json:"send_at,omitempty"`
	BatchID          string               `json:"batch_id,omitempty"`
	ASM              *SuppressionGroup    `json:"asm,omitempty"`
	IPPoolName       string               `json:"ip_pool_name,omitempty"`
	MailSettings     *MailSettings        `json:"mail_settings,omitempty"`
	TrackingSettings *TrackingSettings    `json:"tracking_settings,omitempty"`
}

// NoTemplateData is the personalization type parameter for emails that
// carry no dynamic template data.
type NoTemplateData struct{}
