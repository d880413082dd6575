package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeMeta(t *testing.T) {
	meta := map[string]string{
		"who":        "NPC",
		"background": "images/bg.png",
		"priority":   "3",
		"extraneous": "ignored",
	}

	var out struct {
		Who        string `mapstructure:"who"`
		Background string `mapstructure:"background"`
		Priority   int    `mapstructure:"priority"`
	}
	require.NoError(t, DecodeMeta(meta, &out))

	assert.Equal(t, "NPC", out.Who)
	assert.Equal(t, "images/bg.png", out.Background)
	assert.Equal(t, 3, out.Priority)
}

func TestDecodeMetaTypeMismatch(t *testing.T) {
	var out struct {
		Priority int `mapstructure:"priority"`
	}
	err := DecodeMeta(map[string]string{"priority": "not-a-number"}, &out)
	assert.Error(t, err)
}
