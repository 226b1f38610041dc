package models

import (
	"errors"
	"strings"
)

var ErrUnknownVariable = errors.New("unknown variable")

// Variable is an AMD element code.
type Variable string

const (
	VariableTMP Variable = "TMP"
	VariableRH  Variable = "RH"
	VariableDLR Variable = "DLR"
)

var variables = []Variable{VariableTMP, VariableRH, VariableDLR}

func Variables() []Variable {
	out := make([]Variable, len(variables))
	copy(out, variables)
	return out
}

// Label is the selector text shown to the user.
func (v Variable) Label() string {
	switch v {
	case VariableTMP:
		return "気温 (TMP)"
	case VariableRH:
		return "相対湿度 (RH)"
	case VariableDLR:
		return "下向き長波放射量 (DLR)"
	default:
		return string(v)
	}
}

func (v Variable) Valid() bool {
	switch v {
	case VariableTMP, VariableRH, VariableDLR:
		return true
	}
	return false
}

func ParseVariable(s string) (Variable, error) {
	v := Variable(strings.ToUpper(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", ErrUnknownVariable
	}
	return v, nil
}

type VariableOption struct {
	Code  Variable `json:"code"`
	Label string   `json:"label"`
}

func VariableOptions() []VariableOption {
	out := make([]VariableOption, 0, len(variables))
	for _, v := range variables {
		out = append(out, VariableOption{Code: v, Label: v.Label()})
	}
	return out
}
