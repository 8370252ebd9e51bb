package config

import (
	"strconv"
	"strings"
)

func entityHelp(entity, prefix string) string {
	return prefix + entity + " records"
}

// entryFlag sets one entry of a map-backed path table.
type entryFlag struct {
	m   map[string]string
	key string
}

func (e entryFlag) String() string {
	if e.m == nil {
		return ""
	}
	return e.m[e.key]
}

func (e entryFlag) Set(v string) error {
	e.m[e.key] = strings.TrimSpace(v)
	return nil
}

type int32Flag int32

func (i *int32Flag) String() string { return strconv.FormatInt(int64(*i), 10) }

func (i *int32Flag) Set(v string) error {
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil {
		return err
	}
	*i = int32Flag(n)
	return nil
}
