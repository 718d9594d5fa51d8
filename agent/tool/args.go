package tool

import "strings"

func stringArg(args map[string]any, name string) string {
	v, _ := args[name].(string)
	return strings.TrimSpace(v)
}

func boolArg(args map[string]any, name string) bool {
	v, _ := args[name].(bool)
	return v
}

func floatArg(args map[string]any, name string) (float64, bool) {
	v, ok := args[name]
	if !ok {
		return 0, false
	}
	return numericValue(v)
}

func intArg(args map[string]any, name string) (int, bool) {
	f, ok := floatArg(args, name)
	if !ok {
		return 0, false
	}
	return int(f), true
}
