package sdghtml

import "strings"

// attributeClass tells whether an attribute takes a value.
type attributeClass int

const (
	unknownAttribute attributeClass = iota
	valueAttribute                  // must have a value
	booleanAttribute                // must not have a value
)

var booleanAttributes = []string{
	"allowfullscreen", "async", "autofocus", "autoplay", "checked", "controls", "default",
	"defer", "disabled", "formnovalidate", "hidden", "inert", "ismap", "itemscope", "loop",
	"multiple", "muted", "nomodule", "novalidate", "open", "playsinline", "readonly",
	"required", "reversed", "selected",
}

var valueAttributes = []string{
	"accept", "accept-charset", "accesskey", "action", "allow", "alt", "as", "autocapitalize",
	"autocomplete", "charset", "cite", "class", "cols", "colspan", "content",
	"contenteditable", "crossorigin", "data", "datetime", "decoding", "dir", "dirname",
	"download", "draggable", "enctype", "enterkeyhint", "fetchpriority", "for", "form",
	"formaction", "formenctype", "formmethod", "formtarget", "headers", "height", "high",
	"href", "hreflang", "http-equiv", "id", "inputmode", "integrity", "is", "itemid",
	"itemprop", "itemref", "itemtype", "kind", "label", "lang", "list", "loading", "low",
	"max", "maxlength", "media", "method", "min", "minlength", "name", "nonce", "optimum",
	"pattern", "ping", "placeholder", "poster", "preload", "referrerpolicy", "rel", "role",
	"rows", "rowspan", "sandbox", "scope", "shape", "size", "sizes", "slot", "span",
	"spellcheck", "src", "srcdoc", "srclang", "srcset", "start", "step", "style", "tabindex",
	"target", "title", "translate", "type", "usemap", "value", "width", "wrap",
}

var attributeClasses = func() map[string]attributeClass {
	m := make(map[string]attributeClass, len(booleanAttributes)+len(valueAttributes))
	for _, name := range booleanAttributes {
		m[name] = booleanAttribute
	}
	for _, name := range valueAttributes {
		m[name] = valueAttribute
	}
	return m
}()

// classifyAttribute looks up name in the attribute table. ARIA attributes always take a value.
func classifyAttribute(name string) attributeClass {
	if c, ok := attributeClasses[name]; ok {
		return c
	}
	if strings.HasPrefix(name, "aria-") {
		return valueAttribute
	}
	return unknownAttribute
}

// urlAttributes hold a URL, or a list of them in the case of srcset.
var urlAttributes = map[string]bool{
	"href":   true,
	"src":    true,
	"data":   true,
	"poster": true,
	"srcset": true,
}
