package config

import (
	"github.com/mitchellh/go-homedir"
)

type Path string

func (p *Path) UnmarshalText(b []byte) error {
	*p = ToPath(string(b))
	return nil
}

// ToPath expands a leading ~ to the home directory. Paths that cannot be
// expanded are returned as is.
func ToPath(path string) Path {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return Path(path)
	}
	return Path(expanded)
}
