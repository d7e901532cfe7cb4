package mapping

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

func TestInMemoryStore_Lookup(t *testing.T) {
	store := NewInMemoryStore([]channel.SkuMapping{
		{PlatformCode: channel.PlatformCodeAbly, ProductCode: "P100", OptionCode: "OPT1", ErpSku: "SKU-001"},
		{PlatformCode: channel.PlatformCodeAbly, ProductCode: "P100", OptionCode: "", ErpSku: "SKU-002"},
		{PlatformCode: channel.PlatformCodeCafe24, ProductCode: "P100", OptionCode: "OPT1", ErpSku: "SKU-003"},
	})

	sku, ok := store.Lookup(channel.PlatformCodeAbly, "P100", "OPT1")
	require.True(t, ok)
	assert.Equal(t, "SKU-001", sku)

	// Option-less variant is a distinct key.
	sku, ok = store.Lookup(channel.PlatformCodeAbly, "P100", "")
	require.True(t, ok)
	assert.Equal(t, "SKU-002", sku)

	// Same product/option pair on another platform resolves independently.
	sku, ok = store.Lookup(channel.PlatformCodeCafe24, "P100", "OPT1")
	require.True(t, ok)
	assert.Equal(t, "SKU-003", sku)

	_, ok = store.Lookup(channel.PlatformCodeAbly, "P999", "")
	assert.False(t, ok)
	_, ok = store.Lookup(channel.PlatformCodeZigzag, "P100", "OPT1")
	assert.False(t, ok)
}

func TestInMemoryStore_Replace(t *testing.T) {
	store := NewInMemoryStore([]channel.SkuMapping{
		{PlatformCode: channel.PlatformCodeAbly, ProductCode: "P100", ErpSku: "OLD"},
	})
	require.Equal(t, 1, store.Len())

	store.Replace([]channel.SkuMapping{
		{PlatformCode: channel.PlatformCodeAbly, ProductCode: "P200", ErpSku: "NEW"},
	})

	// The swap is wholesale: old entries are gone, not merged.
	_, ok := store.Lookup(channel.PlatformCodeAbly, "P100", "")
	assert.False(t, ok)
	sku, ok := store.Lookup(channel.PlatformCodeAbly, "P200", "")
	require.True(t, ok)
	assert.Equal(t, "NEW", sku)
	assert.Equal(t, 1, store.Len())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.json")
	content := `[
		{"platform": "ABLY", "product_code": "P100", "option_code": "OPT1", "erp_sku": "SKU-001"},
		{"platform": "CAFE24", "product_code": "P200", "erp_sku": "SKU-002"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	mappings, err := LoadFile(path)

	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, channel.PlatformCodeAbly, mappings[0].PlatformCode)
	assert.Equal(t, "OPT1", mappings[0].OptionCode)
	assert.Equal(t, "SKU-002", mappings[1].ErpSku)
}

func TestLoadFile_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown platform", `[{"platform": "COUPANG", "product_code": "P1", "erp_sku": "S1"}]`, "unknown platform"},
		{"missing product code", `[{"platform": "ABLY", "erp_sku": "S1"}]`, "product_code"},
		{"missing erp sku", `[{"platform": "ABLY", "product_code": "P1"}]`, "erp_sku"},
		{"not json", `{`, "failed to parse"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "mappings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := LoadFile(path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadFile_MissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
