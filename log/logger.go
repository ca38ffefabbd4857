package log

import (
	"strings"
	"sync"

	"github.com/nikeinikei/love/thr"
	"go.uber.org/zap"
)

// DebugLevel selects a class of debug output.
type DebugLevel uint

// Debug levels.
const (
	DebugLevelThread DebugLevel = iota
	DebugLevelSync
	DebugLevelChannel
)

// DebugLevelValue maps level names to levels.
var DebugLevelValue = map[string]DebugLevel{
	"thread":  DebugLevelThread,
	"sync":    DebugLevelSync,
	"channel": DebugLevelChannel,
}

// Bitmask forms of the debug levels, for DebugLog.
const (
	DebugThread  = uint64(1) << DebugLevelThread
	DebugSync    = uint64(1) << DebugLevelSync
	DebugChannel = uint64(1) << DebugLevelChannel
)

var slogger *zap.SugaredLogger
var debugLevel uint64
var mux sync.Mutex

func init() {
	logger, _ := zap.NewDevelopment(zap.AddCallerSkip(1))
	defer logger.Sync()
	slogger = logger.Sugar()
}

// SetLogger replaces the underlying logger. A nil logger disables output.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	mux.Lock()
	slogger = l.WithOptions(zap.AddCallerSkip(1)).Sugar()
	mux.Unlock()
}

func sugar() *zap.SugaredLogger {
	mux.Lock()
	defer mux.Unlock()
	return slogger
}

// withThread tags log lines emitted from inside a named thread.
func withThread(keysAndValues []interface{}) []interface{} {
	name := thr.CurrentName()
	if name == "" {
		return keysAndValues
	}
	return append(keysAndValues[:len(keysAndValues):len(keysAndValues)], "thread", name)
}

// DebugLog logs msg if any bit of lvl is enabled.
func DebugLog(lvl uint64, msg string, keysAndValues ...interface{}) {
	if GetDebugLevel()&lvl == 0 {
		return
	}
	sugar().Infow(msg, withThread(keysAndValues)...)
}

func InfoLog(msg string, keysAndValues ...interface{}) {
	sugar().Infow(msg, withThread(keysAndValues)...)
}

func WarnLog(msg string, keysAndValues ...interface{}) {
	sugar().Warnw(msg, withThread(keysAndValues)...)
}

func enumToBit(in DebugLevel) uint64 {
	return uint64(1) << uint(in)
}

func SetDebugLevel(lvl uint64) {
	mux.Lock()
	defer mux.Unlock()
	debugLevel |= lvl
}

func ClearDebugLevel(lvl uint64) {
	mux.Lock()
	defer mux.Unlock()
	debugLevel &= ^lvl
}

func GetDebugLevel() uint64 {
	mux.Lock()
	defer mux.Unlock()
	return debugLevel
}

func SetDebugLevelEnum(val DebugLevel) {
	SetDebugLevel(enumToBit(val))
}

// SetDebugLevelStrs enables a comma separated list of level names.
// Unknown names are ignored.
func SetDebugLevelStrs(list string) {
	for _, str := range strings.Split(list, ",") {
		val, ok := DebugLevelValue[strings.TrimSpace(str)]
		if ok {
			SetDebugLevelEnum(val)
		}
	}
}
