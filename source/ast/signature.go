package ast

type NameTypePair struct {
	VarName string
	VarType string
	Default Node // Nil unless the declaration carries a default value expression.
}

type AstSig []NameTypePair

func (ns AstSig) String() (result string) {
	for _, v := range ns {
		if result != "" {
			result = result + ", "
		}
		result = result + v.VarName + " " + v.VarType
		if v.Default != nil {
			result = result + " = " + v.Default.String()
		}
	}
	result = "(" + result + ")"
	return
}

func (ns AstSig) GetVarType(name string) (string, bool) {
	for _, v := range ns {
		if v.VarName == name {
			return v.VarType, true
		}
	}
	return "", false
}
