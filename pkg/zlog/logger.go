package zlog

import (
	"os"
	"path"
	"runtime"

	"messenger/internal/config" // 项目内部配置包，用于获取日志路径与级别

	"github.com/natefinch/lumberjack" // 提供日志文件轮转功能
	"go.uber.org/zap"                 // Uber 开源的高性能日志库
	"go.uber.org/zap/zapcore"         // 日志记录的核心组件
)

var logger *zap.Logger

// 自动调用，按全局配置初始化
func init() {
	Init(config.GetConfig().LogConfig)
}

// Init 按给定配置重建日志记录器
// 日志始终以 JSON 格式输出到控制台，LogPath 非空时同时写入轮转文件
func Init(conf config.LogConfig) {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	logLevel := getLogLevelFromConfig(conf.LogLevel)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), logLevel),
	}
	if conf.LogPath != "" {
		ensureLogDirExists(conf.LogPath)
		cores = append(cores, zapcore.NewCore(encoder, getFileLogWriter(conf.LogPath), logLevel))
	}

	logger = zap.New(zapcore.NewTee(cores...))
}

// ensureLogDirExists 确保日志目录存在
func ensureLogDirExists(logPath string) {
	logDir := path.Dir(logPath)
	if _, err := os.Stat(logDir); os.IsNotExist(err) {
		os.MkdirAll(logDir, 0755)
	}
}

// getLogLevelFromConfig 从配置字符串获取日志级别
func getLogLevelFromConfig(levelStr string) zapcore.Level {
	level, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return zapcore.InfoLevel // 默认信息级别
	}
	return level
}

func getFileLogWriter(logPath string) zapcore.WriteSyncer {
	// 使用 lumberjack 实现 log rotate
	lumberJackLogger := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    100,   // 单个文件最大100M
		MaxBackups: 60,    // 多于60个日志文件后，清理较旧的日志
		MaxAge:     1,     // 一天一切割
		Compress:   false, // 是否压缩旧的日志文件
	}
	return zapcore.AddSync(lumberJackLogger)
}

// getCallerInfoForLog 获得调用方的日志信息，包括函数名，文件名，行号
func getCallerInfoForLog() (callerFields []zap.Field) {
	pc, file, line, ok := runtime.Caller(2) // 回溯两层，拿到写日志的调用方的函数信息
	if !ok {
		return
	}
	funcName := path.Base(runtime.FuncForPC(pc).Name())
	callerFields = append(callerFields, zap.String("func", funcName), zap.String("file", file), zap.Int("line", line))
	return
}

func Info(message string, fields ...zap.Field) {
	logger.Info(message, append(fields, getCallerInfoForLog()...)...)
}

func Warn(message string, fields ...zap.Field) {
	logger.Warn(message, append(fields, getCallerInfoForLog()...)...)
}

func Error(message string, fields ...zap.Field) {
	logger.Error(message, append(fields, getCallerInfoForLog()...)...)
}

func Fatal(message string, fields ...zap.Field) {
	logger.Fatal(message, append(fields, getCallerInfoForLog()...)...)
}

func Debug(message string, fields ...zap.Field) {
	logger.Debug(message, append(fields, getCallerInfoForLog()...)...)
}

// Sync 刷新缓冲区，程序退出前调用
func Sync() {
	_ = logger.Sync()
}
