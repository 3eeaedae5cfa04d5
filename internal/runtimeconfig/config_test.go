package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-mdstudio/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{
			name:   "no extensions",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Files.Extensions = nil },
			want:   runtimeconfig.ErrFileExtensionsRequired,
		},
		{
			name:   "extension without dot",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Files.Extensions = []string{"md"} },
			want:   runtimeconfig.ErrFileExtensionInvalid,
		},
		{
			name:   "negative max read bytes",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Files.MaxReadBytes = -1 },
			want:   runtimeconfig.ErrMaxReadBytesInvalid,
		},
		{
			name:   "read only file mode",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Files.FileMode = 0o444 },
			want:   runtimeconfig.ErrFileModeInvalid,
		},
		{
			name:   "negative timeout",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Commands.Timeout = -1 },
			want:   runtimeconfig.ErrCommandTimeoutInvalid,
		},
		{
			name:   "zero bridge message size",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Bridge.MaxMessageBytes = 0 },
			want:   runtimeconfig.ErrBridgeMessageSizeInvalid,
		},
		{
			name:   "zero in flight",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Bridge.MaxInFlight = 0 },
			want:   runtimeconfig.ErrBridgeInFlightInvalid,
		},
		{
			name:   "missing logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = " " },
			want:   runtimeconfig.ErrLoggingProviderRequired,
		},
		{
			name:   "unknown logging provider",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Provider = "syslog" },
			want:   runtimeconfig.ErrLoggingProviderUnknown,
		},
		{
			name:   "unknown logging level",
			mutate: func(cfg *runtimeconfig.Config) { cfg.Logging.Level = "verbose" },
			want:   runtimeconfig.ErrLoggingLevelInvalid,
		},
		{
			name: "unknown gologger format",
			mutate: func(cfg *runtimeconfig.Config) {
				cfg.Logging.Provider = "gologger"
				cfg.Logging.Format = "xml"
			},
			want: runtimeconfig.ErrLoggingFormatInvalid,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestNormalizedExtensions(t *testing.T) {
	files := runtimeconfig.FilesConfig{Extensions: []string{" .MD ", "", ".Markdown"}}
	got := files.NormalizedExtensions()
	if len(got) != 2 || got[0] != ".md" || got[1] != ".markdown" {
		t.Fatalf("unexpected extensions: %#v", got)
	}
}
