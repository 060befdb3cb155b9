package dedupe

// Option configures a Ledger.
type Option func(*memoryLedger)

// WithMaxSize bounds the number of remembered IDs. When full, the oldest ID
// is forgotten first. maxSize <= 0 keeps every ID.
func WithMaxSize(maxSize int) Option {
	return func(l *memoryLedger) {
		l.maxSize = maxSize
	}
}
