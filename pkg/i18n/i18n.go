// Package i18n localizes user-facing messages. Translation lookup never
// affects control flow: a missing message falls back to the message id.
package i18n

import (
	"github.com/bytedance/sonic"
	"github.com/gofiber/contrib/fiberi18n/v2"
	"github.com/gofiber/fiber/v2"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// Conf holds i18n middleware configuration.
type Conf struct {
	RootPath        string   `mapstructure:"rootPath"`        // directory holding localize files
	DefaultLanguage string   `mapstructure:"defaultLanguage"` // BCP 47 tag, e.g. "en"
	AcceptLanguages []string `mapstructure:"acceptLanguages"`
}

// Middleware builds the fiber i18n middleware from configuration.
func Middleware(conf Conf) fiber.Handler {
	def := language.English
	if conf.DefaultLanguage != "" {
		def = language.Make(conf.DefaultLanguage)
	}
	accept := make([]language.Tag, 0, len(conf.AcceptLanguages))
	for _, l := range conf.AcceptLanguages {
		accept = append(accept, language.Make(l))
	}
	if len(accept) == 0 {
		accept = []language.Tag{def}
	}

	return fiberi18n.New(&fiberi18n.Config{
		RootPath:         conf.RootPath,
		DefaultLanguage:  def,
		AcceptLanguages:  accept,
		FormatBundleFile: "json",
		UnmarshalFunc:    sonic.Unmarshal,
	})
}

// Translate returns the localized message for messageID, falling back to
// the id itself when no translation exists.
func Translate(c *fiber.Ctx, messageID string) string {
	msg, err := fiberi18n.Localize(c, messageID)
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}

// TranslateData localizes a templated message, interpolating data into the
// message template. Falls back to the message id like Translate.
func TranslateData(c *fiber.Ctx, messageID string, data map[string]any) string {
	msg, err := fiberi18n.Localize(c, &goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil || msg == "" {
		return messageID
	}
	return msg
}
