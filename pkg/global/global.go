package global

var (
	Version   = "0.1.0"
	BuildTime = "none"
	Verbose   = false

	// SettingsFilename is the default settings file looked up in the
	// working directory when --settings is not given.
	SettingsFilename = "block.settings"

	DefaultRegistryHost     = "registry.up42.com"
	DefaultValidateEndpoint = "https://api.up42.com/validate-schema/block"
)
