package translation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	translator := NewWithCatalogs(map[string]map[string]string{
		"en": {
			"greeting":    "Hello, %s",
			"plain":       "Plain message",
			"englishOnly": "English fallback",
			"positional":  "Slot %[2]s was booked for shipping %[1]s",
		},
		"ru": {
			"greeting": "Привет, %s",
		},
	})

	tests := []struct {
		name   string
		lang   string
		key    string
		args   []any
		expect string
	}{
		{"Exact language match", "ru", "greeting", []any{"Ivan"}, "Привет, Ivan"},
		{"Falls back to English", "ru", "englishOnly", nil, "English fallback"},
		{"Empty language uses default", "", "plain", nil, "Plain message"},
		{"Unknown key passes through", "en", "unknownKey", nil, "unknownKey"},
		{"Unknown key in any language", "de", "stillUnknown", nil, "stillUnknown"},
		{"No args returns raw template", "en", "greeting", nil, "Hello, %s"},
		{"Positional arguments", "en", "positional", []any{"SH-001", "slot-42"}, "Slot slot-42 was booked for shipping SH-001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, translator.Translate(tt.lang, tt.key, tt.args...))
		})
	}
}

func TestAddCatalogMerges(t *testing.T) {
	translator := New()
	translator.AddCatalog("en", map[string]string{"a": "first"})
	translator.AddCatalog("en", map[string]string{"b": "second"})

	assert.Equal(t, "first", translator.Translate("en", "a"))
	assert.Equal(t, "second", translator.Translate("en", "b"))
}

func TestBuiltinCatalogCoversActionMessages(t *testing.T) {
	translator := NewWithCatalogs(map[string]map[string]string{DefaultLanguage: EnglishCatalog})

	for _, key := range []string{
		"shippingSetRequestSent",
		"shippingSetConfirmed",
		"shippingSetRejected",
		"shippingSetCompleted",
		"shippingSetBillSend",
		"shippingSetArchived",
		"shippingSetCancelled",
		"shippingRolledBack",
		"shippingSlotBookedFor",
		"shippingSlotReleased",
		"poolingSlotBookingFailed",
		"poolingSlotUpdateFailed",
		"poolingApiUnauthorized",
		"poolingApiNotFound",
		"poolingApiUnavailable",
	} {
		assert.NotEqual(t, key, translator.Translate(DefaultLanguage, key),
			"missing catalog entry for %s", key)
	}
}
