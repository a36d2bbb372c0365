// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package i18n translates the user-visible labels of chatview.
//
// Keys are the English strings themselves, so an untranslated key renders as
// English. Locale resolution order: explicit tag, LC_ALL, LC_MESSAGES, LANG.
package i18n

import (
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Label keys.
const (
	SaveAndSubmit = "Save & Submit"
	Cancel        = "Cancel"
	Edit          = "edit"
	Copy          = "copy"
	Copied        = "Copied!"
	Thinking      = "thinking..."
	NoMessages    = "No messages yet."
	HelpNavigate  = "navigate"
	HelpQuit      = "quit"
	HelpHelp      = "help"
	HelpNewline   = "newline"
	HelpFocus     = "next"
	HelpScroll    = "scroll"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.German,
	language.Spanish,
	language.French,
	language.SimplifiedChinese,
}

var translations = map[language.Tag]map[string]string{
	language.German: {
		SaveAndSubmit: "Speichern & Senden",
		Cancel:        "Abbrechen",
		Edit:          "bearbeiten",
		Copy:          "kopieren",
		Copied:        "Kopiert!",
		Thinking:      "denke nach...",
		NoMessages:    "Noch keine Nachrichten.",
		HelpNavigate:  "navigieren",
		HelpQuit:      "beenden",
		HelpHelp:      "Hilfe",
		HelpNewline:   "neue Zeile",
		HelpFocus:     "weiter",
		HelpScroll:    "blättern",
	},
	language.Spanish: {
		SaveAndSubmit: "Guardar y enviar",
		Cancel:        "Cancelar",
		Edit:          "editar",
		Copy:          "copiar",
		Copied:        "¡Copiado!",
		Thinking:      "pensando...",
		NoMessages:    "Aún no hay mensajes.",
		HelpNavigate:  "navegar",
		HelpQuit:      "salir",
		HelpHelp:      "ayuda",
		HelpNewline:   "nueva línea",
		HelpFocus:     "siguiente",
		HelpScroll:    "desplazar",
	},
	language.French: {
		SaveAndSubmit: "Enregistrer et envoyer",
		Cancel:        "Annuler",
		Edit:          "modifier",
		Copy:          "copier",
		Copied:        "Copié !",
		Thinking:      "réflexion...",
		NoMessages:    "Aucun message pour l'instant.",
		HelpNavigate:  "naviguer",
		HelpQuit:      "quitter",
		HelpHelp:      "aide",
		HelpNewline:   "nouvelle ligne",
		HelpFocus:     "suivant",
		HelpScroll:    "défiler",
	},
	language.SimplifiedChinese: {
		SaveAndSubmit: "保存并提交",
		Cancel:        "取消",
		Edit:          "编辑",
		Copy:          "复制",
		Copied:        "已复制！",
		Thinking:      "思考中...",
		NoMessages:    "暂无消息。",
		HelpNavigate:  "浏览",
		HelpQuit:      "退出",
		HelpHelp:      "帮助",
		HelpNewline:   "换行",
		HelpFocus:     "下一个",
		HelpScroll:    "滚动",
	},
}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(supported)
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, strs := range translations {
		for key, val := range strs {
			// Keys are compile-time constants; SetString only fails on bad tags.
			_ = b.SetString(tag, key, val)
		}
	}
	return b
}

// Translator renders labels for one resolved locale.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for locale. An empty locale is taken from the
// environment; unknown locales fall back to English.
func New(locale string) *Translator {
	if strings.TrimSpace(locale) == "" {
		locale = LocaleFromEnv()
	}
	tag := Match(locale)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// T returns the translation of key.
func (t *Translator) T(key string) string {
	if t == nil {
		return key
	}
	return t.printer.Sprintf(key)
}

// Tag returns the resolved language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Match resolves a POSIX or BCP 47 locale string against the supported set.
func Match(locale string) language.Tag {
	locale = normalizeLocale(locale)
	if locale == "" {
		return supported[0]
	}
	desired, _, err := language.ParseAcceptLanguage(locale)
	if err != nil || len(desired) == 0 {
		return supported[0]
	}
	_, idx, conf := matcher.Match(desired...)
	if conf == language.No {
		return supported[0]
	}
	return supported[idx]
}

// LocaleFromEnv reads the locale the way POSIX programs do.
func LocaleFromEnv() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// normalizeLocale turns "de_DE.UTF-8@euro" into "de-DE".
func normalizeLocale(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".@"); i >= 0 {
		s = s[:i]
	}
	if s == "C" || s == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(s, "_", "-")
}
