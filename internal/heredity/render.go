package heredity

import "strings"

var choiceNames = [choiceCount]string{
	Speed:       "Speed",
	BulletCount: "Bullets",
	BulletTTL:   "Bullet TTL",
	Damage:      "Damage",
	BulletSpeed: "Bullet speed",
	FireRate:    "Fire rate",
}

var choiceEffects = [choiceCount]string{
	Speed:       "you move 20% slower",
	BulletCount: "half as many bullets per volley",
	BulletTTL:   "bullets pierce half as many robots",
	Damage:      "bullets deal 30% less damage",
	BulletSpeed: "bullets fly 40% slower",
	FireRate:    "30% longer between volleys",
}

func (c Choice) String() string {
	if c < 0 || int(c) >= choiceCount {
		return "Unknown"
	}
	return choiceNames[c]
}

// Describe returns the player-facing effect of a penalty.
func Describe(c Choice) string {
	if c < 0 || int(c) >= choiceCount {
		return ""
	}
	return choiceEffects[c]
}

// DescribeTriple renders one line per penalty of t.
func DescribeTriple(t Triple) string {
	var b strings.Builder
	for i, c := range t {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- ")
		b.WriteString(c.String())
		b.WriteString(": ")
		b.WriteString(Describe(c))
	}
	return b.String()
}
