package domain

// CommandKind labels a Command variant. It is used for logging and metrics only;
// dispatch always goes through a type switch on the concrete command.
type CommandKind string

const (
	KindRegister         CommandKind = "register"
	KindSubscribe        CommandKind = "subscribe"
	KindUnsubscribe      CommandKind = "unsubscribe"
	KindCreateGroup      CommandKind = "create_group"
	KindSendMessage      CommandKind = "send_message"
	KindSendBroadcast    CommandKind = "send_broadcast"
	KindSendGroupMessage CommandKind = "send_group_message"
)

// Command is one of the seven operations understood by the SMS center.
// The set is closed: only the types in this file implement it.
type Command interface {
	Kind() CommandKind
	isCommand()
}

// Register binds an identifier to a phone number.
type Register struct {
	Identifier  Identifier
	PhoneNumber PhoneNumber
}

// Subscribe marks the identifier's number reachable and flushes held messages.
type Subscribe struct {
	Identifier Identifier
}

// Unsubscribe marks the identifier's number unreachable.
type Unsubscribe struct {
	Identifier Identifier
}

// CreateGroup defines (or redefines) a group from raw patterns such as "+369*".
type CreateGroup struct {
	Group    GroupIdentifier
	Patterns []string
}

// SendMessage sends text from one identifier to another.
type SendMessage struct {
	Sender   Identifier
	Receiver Identifier
	Text     string
}

// SendBroadcast sends text to every reachable number.
type SendBroadcast struct {
	Sender Identifier
	Text   string
}

// SendGroupMessage sends text to every reachable number matching the group.
type SendGroupMessage struct {
	Sender Identifier
	Group  GroupIdentifier
	Text   string
}

func (Register) Kind() CommandKind         { return KindRegister }
func (Subscribe) Kind() CommandKind        { return KindSubscribe }
func (Unsubscribe) Kind() CommandKind      { return KindUnsubscribe }
func (CreateGroup) Kind() CommandKind      { return KindCreateGroup }
func (SendMessage) Kind() CommandKind      { return KindSendMessage }
func (SendBroadcast) Kind() CommandKind    { return KindSendBroadcast }
func (SendGroupMessage) Kind() CommandKind { return KindSendGroupMessage }

func (Register) isCommand()         {}
func (Subscribe) isCommand()        {}
func (Unsubscribe) isCommand()      {}
func (CreateGroup) isCommand()      {}
func (SendMessage) isCommand()      {}
func (SendBroadcast) isCommand()    {}
func (SendGroupMessage) isCommand() {}
