// Package xmlconfig implements the log4net-compatible XML configuration
// surface: a `<log4net>` document wires appenders onto loggers, sets
// levels and additivity, binds renderers, and sets generic properties, in
// Merge (default) or Overwrite mode.
package xmlconfig

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/cobaltlog/hier"
	"github.com/cobaltlog/hier/appender"
	"github.com/cobaltlog/hier/diagnostic"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// Configure parses data as a `<log4net>` document and applies it to h,
// using reg to build `<appender type="...">` instances. A nil reg is
// treated as empty (any `<appender-ref>` will fail to resolve and be
// reported as a configuration message, never as a panic).
//
// Only a malformed document (wrong root element, unparsable XML) is
// returned as an error; every other failure is isolated to its element and
// recorded via h.AddConfigMessage, so one bad appender declaration cannot
// sink the rest of the document.
func Configure(h *hier.Hierarchy, data []byte, reg *PluginRegistry) error {
	if reg == nil {
		reg = NewPluginRegistry()
	}

	var root node
	if err := xml.Unmarshal(data, &root); err != nil {
		return &ConfigError{msg: "parsing document: " + err.Error()}
	}
	if root.XMLName.Local != "log4net" {
		return &ConfigError{msg: "root element must be <log4net>, got <" + root.XMLName.Local + ">"}
	}

	c := &configurer{h: h, reg: reg, root: root, appenderCache: make(map[string]appender.Appender)}
	c.run()
	return nil
}

type configurer struct {
	h             *hier.Hierarchy
	reg           *PluginRegistry
	root          node
	appenderCache map[string]appender.Appender
	debug         bool
}

// debugf reports a verbose per-element trace to the DiagnosticSink, gated
// by the root element's debug/emitDebug/configDebug attribute. It is
// purely a tracing aid: nothing here affects what gets configured, only
// what gets reported along the way.
func (c *configurer) debugf(format string, args ...interface{}) {
	if !c.debug {
		return
	}
	c.h.Sink().Log(diagnostic.Debug, fmt.Sprintf(format, args...), nil)
}

// readDebugMode reads the root element's debug/emitDebug/configDebug
// attributes. emitDebug is the modern name, configDebug a deprecated alias
// for it; debug is the original, coarser switch. Any of the three
// coercing to true turns on verbose per-element tracing for this run.
func (c *configurer) readDebugMode() bool {
	on := false
	for _, name := range []string{"debug", "emitDebug", "configDebug"} {
		v, ok := c.root.attr(name)
		if !ok {
			continue
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			c.warn("log4net", "invalid "+name+" value "+v)
			continue
		}
		if b {
			on = true
		}
	}
	return on
}

func (c *configurer) run() {
	c.debug = c.readDebugMode()

	if strings.EqualFold(c.root.attrOr("update", "Merge"), "Overwrite") {
		c.debugf("update=Overwrite: resetting configuration before applying")
		c.h.ResetConfiguration()
	}

	for _, elem := range append(c.root.children("logger"), c.root.children("category")...) {
		name, ok := elem.attr("name")
		if !ok {
			c.warn("logger", "missing required name attribute")
			continue
		}
		log := c.h.GetLogger(name, nil)
		c.configureLogger(elem, log, false)
		c.debugf("configured logger %s", name)
	}

	if rootElem, ok := c.root.child("root"); ok {
		c.configureLogger(rootElem, c.h.Root(), true)
		c.debugf("configured root logger")
	}

	for _, r := range c.root.children("renderer") {
		renderedClass, _ := r.attr("renderedClass")
		renderingClass, _ := r.attr("renderingClass")
		if renderedClass == "" || renderingClass == "" {
			c.warn("renderer", "requires both renderedClass and renderingClass")
			continue
		}
		c.h.BindRenderer(renderedClass, renderingClass)
		c.debugf("bound renderer %s -> %s", renderedClass, renderingClass)
	}

	for _, elem := range c.root.Nodes {
		name := elem.XMLName.Local
		if name == "param" {
			pname, _ := elem.attr("name")
			if pname == "" {
				c.warn("param", "missing required name attribute")
				continue
			}
			c.h.SetProperty(pname, resolveEnvVars(elem.attrOr("value", "")))
			continue
		}
		if reservedElements[name] {
			continue
		}
		value, ok := elem.attr("value")
		if !ok {
			value = strings.TrimSpace(elem.Value)
		}
		c.h.SetProperty(name, resolveEnvVars(value))
	}

	if thresholdName, ok := c.root.attr("threshold"); ok {
		if lvl, ok := c.h.Levels().Lookup(thresholdName); ok {
			c.h.SetThreshold(lvl)
			c.debugf("threshold set to %s", thresholdName)
		} else {
			c.warn("log4net", "unknown threshold level "+thresholdName)
		}
	}

	c.h.MarkConfigured()
	c.debugf("configuration run complete")
}

// configureLogger applies the additivity attribute and the level and
// appender-ref children of a single <logger>/<category>/<root> element.
func (c *configurer) configureLogger(elem node, log *hier.Logger, isRoot bool) {
	additivity := true
	if v, ok := elem.attr("additivity"); ok {
		b, err := cast.ToBoolE(v)
		if err != nil {
			c.warn(elem.XMLName.Local, "invalid additivity value "+v)
		} else {
			additivity = b
		}
	}
	log.SetAdditivity(additivity)
	log.RemoveAllAppenders()

	for _, lv := range append(elem.children("level"), elem.children("priority")...) {
		value, _ := lv.attr("value")
		c.applyLevel(log, isRoot, value)
	}

	for _, ref := range elem.children("appender-ref") {
		refName, ok := ref.attr("ref")
		if !ok {
			c.warn("appender-ref", "missing ref attribute")
			continue
		}
		a, err := c.resolveAppenderRef(refName)
		if err != nil {
			c.warnErr("appender-ref", err)
			continue
		}
		log.AddAppender(a)
	}
}

func (c *configurer) applyLevel(log *hier.Logger, isRoot bool, value string) {
	if strings.EqualFold(value, "inherited") {
		if isRoot {
			c.warn("root", "level cannot be inherited; ignored")
			return
		}
		log.SetLevel(nil)
		return
	}
	lvl, ok := c.h.Levels().Lookup(value)
	if !ok {
		c.warn("level", "unknown level "+value)
		return
	}
	log.SetLevel(&lvl)
}

// resolveAppenderRef finds the <appender name=ref> sibling and returns a
// live instance for it (recursively wiring any nested appender-refs if it is
// itself an AttachableContainer). Resolution checks two caches before
// building anything new:
//
//  1. this run's own appenderCache, so repeated references within one
//     document share one instance;
//  2. the Hierarchy's cross-run appender-by-name store, so re-applying the
//     same document in Merge mode reuses the appender built by a previous
//     Configure call instead of constructing an identical-looking twin.
//     Overwrite mode clears that store via ResetConfiguration before this
//     runs, so a fresh instance is built there as expected.
func (c *configurer) resolveAppenderRef(ref string) (appender.Appender, error) {
	if a, ok := c.appenderCache[ref]; ok {
		return a, nil
	}
	if a, ok := c.h.AppenderByName(ref); ok {
		c.appenderCache[ref] = a
		c.debugf("reused existing appender %s", ref)
		return a, nil
	}
	for _, ae := range c.root.children("appender") {
		name, ok := ae.attr("name")
		if !ok || name != ref {
			continue
		}
		typeName := ae.attrOr("type", "")
		a, err := c.reg.build(name, typeName, ae.paramMap())
		if err != nil {
			return nil, &ConfigElementError{Element: "appender[" + ref + "]", Cause: err}
		}
		c.appenderCache[ref] = a
		c.h.RegisterAppenderByName(name, a)
		c.debugf("built appender %s of type %s", name, typeName)
		if container, ok := a.(appender.AttachableContainer); ok {
			for _, nestedRef := range ae.children("appender-ref") {
				nestedName, ok := nestedRef.attr("ref")
				if !ok {
					continue
				}
				nested, err := c.resolveAppenderRef(nestedName)
				if err != nil {
					c.warnErr("appender-ref", err)
					continue
				}
				container.AddAppender(nested)
			}
		}
		return a, nil
	}
	return nil, &ConfigElementError{Element: "appender-ref", Cause: errors.Errorf("no <appender name=%q> found", ref)}
}

func (c *configurer) warn(element, msg string) {
	c.warnErr(element, &ConfigElementError{Element: element, Cause: errors.New(msg)})
}

// warnErr records err on the hierarchy's configuration messages and reports
// it to the DiagnosticSink.
func (c *configurer) warnErr(element string, err error) {
	c.h.AddConfigMessage(hier.ConfigMessage{Level: diagnostic.Warn, Logger: element, Err: err})
	c.h.Sink().Log(diagnostic.Warn, "configuration element failed", diagnostic.Fields{
		"element": element,
		"error":   err.Error(),
	})
}
