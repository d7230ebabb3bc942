package hostlog

// Facade helpers using global Singleton logger.
// Usage: hostlog.Warn().Str("target", id).Msg("slow")

func Trace() *Event { return L().Trace() }
func Debug() *Event { return L().Debug() }
func Info() *Event  { return L().Info() }
func Warn() *Event  { return L().Warn() }
func Error() *Event { return L().Error() }
