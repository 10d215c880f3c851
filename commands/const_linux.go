package commands

const (
	_etc = "/usr/local/etc/ggsheets"

	DEFAULT_CONFIG = _etc + "/ggsheets.toml"
)
