package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ntc/internal/config"
)

func TestApplyConfigValue(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		check   func(*config.Config) bool
		wantErr bool
	}{
		{
			name:  "api level",
			key:   "android.api_level",
			value: "24",
			check: func(c *config.Config) bool { return c.Android.APILevel == 24 },
		},
		{
			name:    "api level not a number",
			key:     "android.api_level",
			value:   "twenty",
			wantErr: true,
		},
		{
			name:  "compiler",
			key:   "android.compiler",
			value: "clang-17",
			check: func(c *config.Config) bool { return c.Android.Compiler == "clang-17" },
		},
		{
			name:  "darwin",
			key:   "osxcross.darwin",
			value: "darwin20",
			check: func(c *config.Config) bool { return c.Osxcross.Darwin == "darwin20" },
		},
		{
			name:  "wrapper suffix",
			key:   "mingw.wrapper_suffix",
			value: "-faker",
			check: func(c *config.Config) bool { return c.Mingw.WrapperSuffix == "-faker" },
		},
		{
			name:  "host",
			key:   "host",
			value: "windows",
			check: func(c *config.Config) bool { return c.Host == "windows" },
		},
		{
			name:  "property",
			key:   "properties.androidNdk",
			value: "/opt/ndk",
			check: func(c *config.Config) bool { return c.Properties["androidNdk"] == "/opt/ndk" },
		},
		{
			name:    "empty property name",
			key:     "properties.",
			value:   "/opt/ndk",
			wantErr: true,
		},
		{
			name:    "unknown key",
			key:     "android.ndk_version",
			value:   "25",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			err := applyConfigValue(cfg, tt.key, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("applyConfigValue() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.check != nil && !tt.check(cfg) {
				t.Errorf("applyConfigValue(%q, %q) did not update config: %+v", tt.key, tt.value, cfg)
			}
		})
	}
}

func TestApplyConfigValue_DoesNotShareProperties(t *testing.T) {
	orig := config.Default()
	orig.Properties = map[string]string{"osxcrossBin": "/opt/osxcross/bin"}

	cfg := *orig
	if err := applyConfigValue(&cfg, "properties.androidNdk", "/opt/ndk"); err != nil {
		t.Fatal(err)
	}
	if _, ok := orig.Properties["androidNdk"]; ok {
		t.Error("original config properties were modified")
	}
	if cfg.Properties["osxcrossBin"] != "/opt/osxcross/bin" {
		t.Error("existing property lost")
	}
}

func TestConfigGet(t *testing.T) {
	origCfg := appConfig
	defer func() { appConfig = origCfg }()

	viper.Reset()
	t.Cleanup(viper.Reset)
	viper.Set("android.api_level", 24)

	appConfig = config.Default()
	appConfig.Properties = map[string]string{"androidNdk": "/opt/ndk"}

	tests := []struct {
		key  string
		want string
	}{
		{"android.api_level", "24\n"},
		{"osxcross.darwin", "not set\n"},
		{"properties.androidNdk", "/opt/ndk\n"},
		{"properties.osxcrossBin", "not set\n"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			var buf bytes.Buffer
			if err := configGet(&buf, tt.key); err != nil {
				t.Fatal(err)
			}
			if buf.String() != tt.want {
				t.Errorf("configGet(%q) = %q, want %q", tt.key, buf.String(), tt.want)
			}
		})
	}
}

func TestWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "ntc.yaml")

	cfg := config.Default()
	cfg.Android.APILevel = 26
	cfg.Properties = map[string]string{"androidNdk": "/opt/ndk"}

	if err := writeConfig(path, cfg); err != nil {
		t.Fatalf("writeConfig() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var got config.Config
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if got.Android.APILevel != 26 {
		t.Errorf("api_level = %d, want 26", got.Android.APILevel)
	}
	if got.Properties["androidNdk"] != "/opt/ndk" {
		t.Errorf("properties = %v, want androidNdk", got.Properties)
	}
	if got.Version != 1 {
		t.Errorf("version = %d, want 1", got.Version)
	}
}
