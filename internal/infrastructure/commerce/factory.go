package commerce

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/sellerbridge/backend/internal/domain/channel"
)

// adapterConstructor builds one concrete adapter from decrypted credential
// fields.
type adapterConstructor func(fields map[string]string, logger *zap.Logger) (channel.Adapter, error)

// Factory implements channel.AdapterFactory. Dispatch goes through a static
// registry built at construction, keyed by the closed PlatformCode set; an
// unrecognized tag fails with a ConfigError before any network activity.
type Factory struct {
	cipher       *SecretCipher
	logger       *zap.Logger
	constructors map[channel.PlatformCode]adapterConstructor
	overrides    map[channel.PlatformCode]string
}

// NewFactory creates the adapter factory with every supported platform
// registered.
func NewFactory(cipher *SecretCipher, logger *zap.Logger) *Factory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Factory{
		cipher: cipher,
		logger: logger,
		constructors: map[channel.PlatformCode]adapterConstructor{
			channel.PlatformCodeAbly:   buildAblyAdapter,
			channel.PlatformCodeCafe24: buildCafe24Adapter,
			channel.PlatformCodeZigzag: buildZigzagAdapter,
		},
		overrides: map[channel.PlatformCode]string{},
	}
}

// SetBaseURLOverride pins a platform's API base URL, for staging endpoints.
// A baseUrl carried in the channel's own secret blob still wins.
func (f *Factory) SetBaseURLOverride(platform channel.PlatformCode, baseURL string) {
	if baseURL != "" {
		f.overrides[platform] = baseURL
	}
}

// Build decrypts the secret blob and constructs a fresh adapter for one
// synchronization job.
func (f *Factory) Build(platform channel.PlatformCode, encryptedSecret string) (channel.Adapter, error) {
	construct, ok := f.constructors[platform]
	if !ok {
		return nil, channel.NewConfigError(platform, "platform", channel.ErrUnknownPlatform)
	}

	fields, err := f.cipher.Decrypt(encryptedSecret)
	if err != nil {
		return nil, channel.NewConfigError(platform, "secret", err)
	}
	if override, ok := f.overrides[platform]; ok && fields["baseUrl"] == "" {
		fields["baseUrl"] = override
	}

	adapter, err := construct(fields, f.logger.Named(string(platform)))
	if err != nil {
		return nil, err
	}
	return adapter, nil
}

// Supported returns the registered platform codes in stable order.
func (f *Factory) Supported() []channel.PlatformCode {
	codes := make([]channel.PlatformCode, 0, len(f.constructors))
	for code := range f.constructors {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}

// requireField reads a required credential field, producing a ConfigError
// naming the missing key.
func requireField(platform channel.PlatformCode, fields map[string]string, key string) (string, error) {
	value, ok := fields[key]
	if !ok || value == "" {
		return "", channel.NewConfigError(platform, key, channel.ErrMissingCredential)
	}
	return value, nil
}

func buildAblyAdapter(fields map[string]string, logger *zap.Logger) (channel.Adapter, error) {
	apiKey, err := requireField(channel.PlatformCodeAbly, fields, "apiKey")
	if err != nil {
		return nil, err
	}
	config := NewAblyConfig(apiKey)
	if baseURL := fields["baseUrl"]; baseURL != "" {
		config.BaseURL = baseURL
	}
	return NewAblyAdapter(config, logger)
}

func buildCafe24Adapter(fields map[string]string, logger *zap.Logger) (channel.Adapter, error) {
	mallID, err := requireField(channel.PlatformCodeCafe24, fields, "mallId")
	if err != nil {
		return nil, err
	}
	clientID, err := requireField(channel.PlatformCodeCafe24, fields, "clientId")
	if err != nil {
		return nil, err
	}
	clientSecret, err := requireField(channel.PlatformCodeCafe24, fields, "clientSecret")
	if err != nil {
		return nil, err
	}
	refreshToken, err := requireField(channel.PlatformCodeCafe24, fields, "refreshToken")
	if err != nil {
		return nil, err
	}
	config := NewCafe24Config(mallID, clientID, clientSecret, refreshToken)
	if baseURL := fields["baseUrl"]; baseURL != "" {
		config.BaseURLOverride = baseURL
	}
	return NewCafe24Adapter(config, logger)
}

func buildZigzagAdapter(fields map[string]string, logger *zap.Logger) (channel.Adapter, error) {
	partnerKey, err := requireField(channel.PlatformCodeZigzag, fields, "partnerKey")
	if err != nil {
		return nil, err
	}
	config := &ZigzagConfig{PartnerKey: partnerKey}
	if baseURL := fields["baseUrl"]; baseURL != "" {
		config.BaseURL = baseURL
	}
	return NewZigzagAdapter(config, logger)
}

// Ensure Factory implements the port
var _ channel.AdapterFactory = (*Factory)(nil)

// String helper for diagnostics.
func (f *Factory) String() string {
	return fmt.Sprintf("commerce.Factory(%d platforms)", len(f.constructors))
}
