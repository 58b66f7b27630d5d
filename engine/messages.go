package engine

import "github.com/dpotapov/lexorgo/styleloader"

// engineMessages gives the engine package's own diagnostics (compile.go's
// E200/E201, link.go's E202/E203, rewrite.go's E204/E205, exec.go's
// E100/W101/W102) a resolvable entry in the map passed to logdoc.Explain,
// the same way a style module's own Messages() resolves its codes (spec
// §4.8). Without this, "engine" was recorded in log.Modules by every
// c.Msg("engine", ...) call but never appeared in log.Explanation, since
// modulesByName only ever returned the (fromLang, toLang, style) module.
type engineMessages struct {
	styleloader.BaseStyleModule
}

func (engineMessages) Messages() (map[string]string, []string) {
	codes := map[string]string{
		"E100": "embedded execution failed",
		"E200": "failed to build template clone",
		"E201": "directive Compile hook failed",
		"E202": "directive PreLink hook failed",
		"E203": "directive PostLink hook failed",
		"E204": "directive Start hook failed",
		"E205": "directive End hook failed",
		"W101": "nested parse produced diagnostics",
		"W102": "nested parse diagnostics merged",
	}
	return codes, []string{"diagnostics raised by the conversion engine itself, not a style module directive"}
}

func (engineMessages) Info() styleloader.ModuleInfo {
	return styleloader.ModuleInfo{Lang: "engine", Type: "engine", Style: "internal"}
}
