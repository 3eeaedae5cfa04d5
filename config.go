package mdstudio

import "github.com/goliatone/go-mdstudio/internal/runtimeconfig"

var (
	ErrFileExtensionsRequired   = runtimeconfig.ErrFileExtensionsRequired
	ErrFileExtensionInvalid     = runtimeconfig.ErrFileExtensionInvalid
	ErrMaxReadBytesInvalid      = runtimeconfig.ErrMaxReadBytesInvalid
	ErrFileModeInvalid          = runtimeconfig.ErrFileModeInvalid
	ErrCommandTimeoutInvalid    = runtimeconfig.ErrCommandTimeoutInvalid
	ErrBridgeMessageSizeInvalid = runtimeconfig.ErrBridgeMessageSizeInvalid
	ErrBridgeInFlightInvalid    = runtimeconfig.ErrBridgeInFlightInvalid
	ErrLoggingProviderRequired  = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown   = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid      = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid     = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config         = runtimeconfig.Config
	FilesConfig    = runtimeconfig.FilesConfig
	CommandsConfig = runtimeconfig.CommandsConfig
	MarkdownConfig = runtimeconfig.MarkdownConfig
	BridgeConfig   = runtimeconfig.BridgeConfig
	LoggingConfig  = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
