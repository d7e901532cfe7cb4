package mapping

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// mappingRecord is the on-disk shape of one curated mapping.
type mappingRecord struct {
	Platform    string `json:"platform"`
	ProductCode string `json:"product_code"`
	OptionCode  string `json:"option_code"`
	ErpSku      string `json:"erp_sku"`
}

// LoadFile reads curated SKU mappings from a JSON file. Records with an
// unknown platform code or an empty SKU are rejected so a typo in the file
// surfaces at startup instead of as silent unmapped items.
func LoadFile(path string) ([]channel.SkuMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mapping: failed to read %s: %w", path, err)
	}

	var records []mappingRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("mapping: failed to parse %s: %w", path, err)
	}

	mappings := make([]channel.SkuMapping, 0, len(records))
	for i, rec := range records {
		code := channel.PlatformCode(rec.Platform)
		if !code.IsValid() {
			return nil, fmt.Errorf("mapping: record %d: unknown platform %q", i, rec.Platform)
		}
		if rec.ProductCode == "" || rec.ErpSku == "" {
			return nil, fmt.Errorf("mapping: record %d: product_code and erp_sku are required", i)
		}
		mappings = append(mappings, channel.SkuMapping{
			PlatformCode: code,
			ProductCode:  rec.ProductCode,
			OptionCode:   rec.OptionCode,
			ErpSku:       rec.ErpSku,
		})
	}
	return mappings, nil
}
