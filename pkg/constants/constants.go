// constants 包定义了一些常量
// 包括通道大小、系统错误信息、标题长度限制和redis超时时间
package constants

const (
	CHANNEL_SIZE     = 100            // 通道大小
	SYSTEM_ERROR     = "系统错误，请联系工作人员" // 系统错误
	TITLE_MAX_LENGTH = 255            // 文本消息标题最大长度
	REDIS_TIMEOUT    = 1              // redis timeout，单位秒
	NOT_IMPLEMENTED  = 501            // 暂不支持的消息类型所用的错误码
)
