package request

// CreateUserRequest 创建用户请求结构体
type CreateUserRequest struct {
	Username string `json:"username"` // 用户名
}

// CreateUserTextMessageRequest 创建单聊文本消息请求结构体
type CreateUserTextMessageRequest struct {
	UserId  int64  `json:"user_id"` // 接收用户ID
	Title   string `json:"title"`   // 标题，最多255个字符
	Content string `json:"content"` // 内容
}

// CreateGroupTextMessageRequest 创建群聊文本消息请求结构体
type CreateGroupTextMessageRequest struct {
	TargetIds []int64 `json:"target_ids"` // 接收用户ID列表
	Title     string  `json:"title"`      // 标题，最多255个字符
	Content   string  `json:"content"`    // 内容
}

// IdRequest 只携带一个ID的请求结构体，用于删除消息、重置通知等操作
type IdRequest struct {
	Id int64 `json:"id"`
}
