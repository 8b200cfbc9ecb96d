package lab

// Topic identifies one of the supported CCNA study topics.
type Topic string

// Supported topics.
const (
	TopicOSPF Topic = "OSPF Single Area"
	TopicVLAN Topic = "VLANs & Trunking"
	TopicACL  Topic = "ACL (Standard/Extended)"
	TopicNAT  Topic = "NAT (Static/Dynamic)"
	TopicBGP  Topic = "BGP Basics"
)

// Topics is the complete list of supported topics, in menu order.
var Topics = []Topic{
	TopicOSPF,
	TopicVLAN,
	TopicACL,
	TopicNAT,
	TopicBGP,
}

// IsValidTopic checks if a topic is in the supported list.
func IsValidTopic(topic Topic) bool {
	for _, t := range Topics {
		if t == topic {
			return true
		}
	}
	return false
}

// Difficulty identifies one of the supported difficulty levels.
type Difficulty string

// Supported difficulty levels, from easiest to hardest.
const (
	DifficultyJunior   Difficulty = "Junior Admin"
	DifficultyEngineer Difficulty = "Network Engineer"
	DifficultyExpert   Difficulty = "CCIE Expert"
)

// Difficulties is the ordered list of difficulty levels.
var Difficulties = []Difficulty{
	DifficultyJunior,
	DifficultyEngineer,
	DifficultyExpert,
}

// IsValidDifficulty checks if a difficulty is in the supported list.
func IsValidDifficulty(difficulty Difficulty) bool {
	for _, d := range Difficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}
