package consts

const (
	SmsKey           = "sms:validate:code:"
	SmsAttemptKey    = "sms:validate:attempt:"
	SmsResendLockKey = "sms:resend:lock:"
	SmsCheckTokenKey = "sms:check:token:"

	ProfileKey       = "profile:user:"
	ProfileStatsKey  = "profile:stats"
	ProfileRecentKey = "profile:recent"

	SearchVersionKey = "search:version"
	SearchResultKey  = "search:result:"

	ConversationListKey = "im:conversation:list:"
	UnreadCountKey      = "im:unread:count:"
	IMUserKey           = "im:user:"
)

// NoProfileValue 占位值，对"无资料"做短时负缓存
const NoProfileValue = "NO_PROFILE"
