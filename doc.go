/*
Package hier implements a hierarchical logging core: a tree of named
loggers, inherited effective levels, additive appender dispatch, and an
XML configurator, modeled on the classic log4j/log4net Hierarchy design.

Loggers are addressed by dot-separated name ("com.foo.bar") and form a
tree rooted at Hierarchy.Root(). A logger's name need not be registered
in order; GetLogger links "com.foo.bar" to its nearest registered
ancestor (root if none), leaving placeholders at the unregistered
intermediate names, and retroactively reparents any
previously-registered descendants once an intermediate name appears:

	h := hier.NewHierarchy("myapp", nil)
	log := h.GetLogger("com.foo.bar", nil)
	info := level.INFO
	log.SetLevel(&info)
	log.AddAppender(myAppender)
	log.Info("started")

A logger with no level of its own inherits the nearest ancestor's level
(EffectiveLevel). Logging a message walks from the logger up through its
ancestors, invoking every appender found along the way, until a logger
with Additivity() false is reached or the root is exhausted.

Configuration is normally driven by an XML document via the xmlconfig
subpackage, which builds appenders through a PluginRegistry rather than
reflection:

	reg := xmlconfig.NewPluginRegistry()
	reg.Register("console", func() appender.Appender { return console.New(os.Stdout) })
	xmlconfig.Configure(h, xmlBytes, reg)

The core reports its own operational problems — unresolvable appender
references, config element failures, the one-shot "no appenders found"
warning — through the diagnostic.Sink capability rather than a baked-in
logger, so embedding applications can route them into whatever logging
backend they already use (see the diagnostic/*sink subpackages).
*/
package hier
