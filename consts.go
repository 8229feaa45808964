package brokerlog

const (
	emptyString  = ""
	defaultLevel = "info"
)

const (
	errMsgNilConfig       = "Broker logging config is nil."
	errMsgConfigInvalid   = "Broker logging configuration is invalid."
	errMsgOptionsInvalid  = "Logger options are invalid."
	errMsgInvalidLevel    = "Logging level is invalid."
	errMsgLogDir          = "Failed to create logs directory."
	errMsgExecName        = "Failed to get executable name."
	errMsgWorkingDirUnset = "Working dir must be set when file logging is enabled."
)

// Record messages.
const (
	msgListening                = "listening"
	msgConnected                = "connected"
	msgDisconnected             = "disconnected"
	msgDisconnectWithoutConnect = "disconnect without connect"
	msgSubscribed               = "subscribed"
	msgUnsubscribed             = "unsubscribed"
	msgPublished                = "published"
	msgClientError              = "client error"
)

// Record field names.
const (
	fieldClient        = "client"
	fieldClientID      = "id"
	fieldSubscriptions = "subscriptions"
	fieldTopics        = "topics"
	fieldMessage       = "message"
)
