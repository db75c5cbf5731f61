package utils

import (
	"embed"
	"path"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v2"
)

//go:embed locales/*.yaml
var locales embed.FS

var (
	bundle     *i18n.Bundle
	bundleOnce sync.Once
)

// InitI18NBundle - load the embedded message files, spanish is the default
func InitI18NBundle() {
	bundleOnce.Do(func() {
		bundle = i18n.NewBundle(language.Spanish)
		bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

		files, err := locales.ReadDir("locales")
		if err != nil {
			panic(err)
		}
		for _, f := range files {
			name := path.Join("locales", f.Name())
			data, err := locales.ReadFile(name)
			if err != nil {
				panic(err)
			}
			bundle.MustParseMessageFileBytes(data, name)
		}
	})
}

func NewLocalizer(lang ...string) *i18n.Localizer {
	InitI18NBundle()
	return i18n.NewLocalizer(bundle, lang...)
}

// Localize - message of the given id, the id itself when it is not translated
func Localize(l *i18n.Localizer, id string) string {
	if l == nil {
		l = NewLocalizer()
	}

	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return id
	}
	return msg
}

// Language - the language the localizer resolves to, the bundle default for
// a nil localizer
func Language(l *i18n.Localizer) language.Tag {
	if l == nil {
		l = NewLocalizer()
	}

	_, tag, err := l.LocalizeWithTag(&i18n.LocalizeConfig{MessageID: "label_year"})
	if err != nil {
		return language.Spanish
	}
	return tag
}
