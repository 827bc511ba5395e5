package consts

const (
	MimePrefixImage = "image"
)

const (
	// MaxProfilePhotos 单个资料的照片上限
	MaxProfilePhotos = 10
	// PhotoMaxDimension 上传照片统一压缩到的最长边
	PhotoMaxDimension = 1280
	// PhotoMinDimension 过小的图片直接拒绝
	PhotoMinDimension = 200
)

const (
	// MessagePageSize 会话消息默认分页大小
	MessagePageSize = 20
	// MaxUnansweredMessages 单方向未获回复的消息上限
	MaxUnansweredMessages = 10
	// MessageMinLength 消息内容最短长度（按字符计）
	MessageMinLength = 10
	// MessageMaxLength 消息内容最长长度（按字符计）
	MessageMaxLength = 1000
)
