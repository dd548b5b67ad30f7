package config

// Command selects the single operation performed by one invocation.
type Command int

const (
	CommandUnknown Command = iota
	CommandCheck
	CommandType
	CommandGet
	CommandKeys
	CommandSet
	CommandSplice
	CommandInsert
	CommandSlice
	CommandDecodeString
	CommandEncodeString
	CommandEncodeKey
)

var commandNames = map[Command]string{
	CommandCheck:        "check",
	CommandType:         "type",
	CommandGet:          "get",
	CommandKeys:         "keys",
	CommandSet:          "set",
	CommandSplice:       "splice",
	CommandInsert:       "insert",
	CommandSlice:        "slice",
	CommandDecodeString: "decode-string",
	CommandEncodeString: "encode-string",
	CommandEncodeKey:    "encode-key",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseCommand maps a command name to its Command.
func ParseCommand(name string) (Command, bool) {
	for command, commandName := range commandNames {
		if commandName == name {
			return command, true
		}
	}
	return CommandUnknown, false
}

// ReadsInput reports whether the command consumes standard input.
func (c Command) ReadsInput() bool {
	return c != CommandEncodeKey && c != CommandUnknown
}
