package sqlstore

import (
	"strconv"
	"strings"
)

// Dialect adapts the "?" placeholder queries in this package to a driver.
type Dialect struct {
	Driver string
	upsert string
}

var (
	MySQL = Dialect{
		Driver: "mysql",
		upsert: `INSERT INTO storefront_kv (k, v) VALUES (?, ?) ON DUPLICATE KEY UPDATE v = VALUES(v)`,
	}
	Postgres = Dialect{
		Driver: "postgres",
		upsert: `INSERT INTO storefront_kv (k, v) VALUES (?, ?) ON CONFLICT (k) DO UPDATE SET v = EXCLUDED.v`,
	}
)

func DialectFor(driver string) (Dialect, bool) {
	switch driver {
	case MySQL.Driver:
		return MySQL, true
	case Postgres.Driver:
		return Postgres, true
	}
	return Dialect{}, false
}

// Rebind rewrites "?" placeholders to "$1", "$2"... for postgres.
func (d Dialect) Rebind(query string) string {
	if d.Driver != Postgres.Driver {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
