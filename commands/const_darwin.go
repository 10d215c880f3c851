package commands

const (
	_etc = "/usr/local/etc/com.github.ggapi"

	DEFAULT_CONFIG = _etc + "/ggsheets/ggsheets.toml"
)
