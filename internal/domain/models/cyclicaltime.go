// internal/domain/models/cyclicaltime.go
package models

import "fmt"

// CyclicalTime groups knowledge entries by a non-linear time instead of a
// calendar date. CyclePresente is not stored on records; it selects every entry.
type CyclicalTime string

const (
	CyclePresente  CyclicalTime = "presente"
	CyclePlantar   CyclicalTime = "plantar"
	CycleColher    CyclicalTime = "colher"
	CycleChuvas    CyclicalTime = "chuvas"
	CycleSeca      CyclicalTime = "seca"
	CycleLuaNova   CyclicalTime = "lua_nova"
	CycleLuaCheia  CyclicalTime = "lua_cheia"
	CycleAncestral CyclicalTime = "ancestrais"
)

// CyclicalTimes returns every cyclical time in display order, CyclePresente first.
func CyclicalTimes() []CyclicalTime {
	return []CyclicalTime{
		CyclePresente,
		CyclePlantar,
		CycleColher,
		CycleChuvas,
		CycleSeca,
		CycleLuaNova,
		CycleLuaCheia,
		CycleAncestral,
	}
}

// Label returns the human label, or "" for an unknown value.
func (c CyclicalTime) Label() string {
	switch c {
	case CyclePresente:
		return "Agora"
	case CyclePlantar:
		return "Tempo de Plantar"
	case CycleColher:
		return "Tempo de Colher"
	case CycleChuvas:
		return "Tempo das Chuvas"
	case CycleSeca:
		return "Tempo da Seca"
	case CycleLuaNova:
		return "Lua Nova"
	case CycleLuaCheia:
		return "Lua Cheia"
	case CycleAncestral:
		return "Tempo Ancestral"
	}
	return ""
}

// ParseCyclicalTime validates s. An empty string selects CyclePresente.
func ParseCyclicalTime(s string) (CyclicalTime, error) {
	if s == "" {
		return CyclePresente, nil
	}
	c := CyclicalTime(s)
	if c.Label() == "" {
		return "", fmt.Errorf("unknown cyclical time %q", s)
	}
	return c, nil
}
