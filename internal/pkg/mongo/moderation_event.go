package mongo

import (
	"time"
)

// 审核事件类型
const (
	EventReportCreated  = "report_created"  // 用户举报
	EventContentBlocked = "content_blocked" // 消息内容被拦截
)

// ModerationEvent MongoDB 审核事件流水模型
type ModerationEvent struct {
	ID           string    `bson:"_id,omitempty" json:"id"`                    // MongoDB 自动生成的 ObjectID
	EventType    string    `bson:"event_type" json:"eventType"`                // report_created / content_blocked
	ActorID      uint64    `bson:"actor_id" json:"actorId"`                    // 触发事件的用户 UID
	TargetID     uint64    `bson:"target_id,omitempty" json:"targetId"`        // 被举报用户或消息接收者 UID
	Reason       string    `bson:"reason,omitempty" json:"reason"`             // 举报原因或拦截规则
	Content      string    `bson:"content,omitempty" json:"content"`           // 被拦截的原始内容（截断后）
	OccurredAt   time.Time `bson:"occurred_at" json:"occurredAt"`              // 事件发生时间
	RegisteredAt time.Time `bson:"registered_at,omitempty" json:"registeredAt"` // 消费入库时间
}
