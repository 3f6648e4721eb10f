package xmlconfig

import (
	"os"
	"regexp"
	"runtime"
	"strings"
)

// envVarPattern matches `${VAR}` references in attribute/element values.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// resolveEnvVars substitutes `${VAR}` references with the named
// environment variable's value: case-preserving on POSIX, case-folded on
// Windows. The OS check happens at substitution time rather than behind a
// build tag, since the rule turns on the running OS, not the compiling
// one.
func resolveEnvVars(s string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	windows := runtime.GOOS == "windows"
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := match[2 : len(match)-1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		if windows {
			for _, e := range os.Environ() {
				if i := strings.IndexByte(e, '='); i > 0 && strings.EqualFold(e[:i], name) {
					return e[i+1:]
				}
			}
		}
		return match
	})
}
