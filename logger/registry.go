package logger

import "sync"

// named maps component names (feed, testimonial, carousel) to loggers.
var named sync.Map

// Register stores l under name, replacing any previous entry.
func Register(name string, l *Logger) {
	named.Store(name, l)
}

// Get returns the logger registered under name, or the global logger
// tagged with that component when none was registered.
func Get(name string) *Logger {
	if l, ok := named.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}

// RegisterDefaults derives a component logger from the global one for each
// name. Run it after Init so the derived loggers pick up the level.
func RegisterDefaults(names ...string) {
	global := GetGlobalLogger()
	for _, name := range names {
		Register(name, global.WithComponent(name))
	}
}
