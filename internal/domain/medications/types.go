package medications

// MedicationType define las presentaciones soportadas.
// @Enum Tablet, Syrup, Injection, Capsule, Cream, Ointment
type MedicationType string

const (
	TypeTablet    MedicationType = "Tablet"
	TypeSyrup     MedicationType = "Syrup"
	TypeInjection MedicationType = "Injection"
	TypeCapsule   MedicationType = "Capsule"
	TypeCream     MedicationType = "Cream"
	TypeOintment  MedicationType = "Ointment"
)

// typeIcons mapea cada presentación a su ícono (los clientes lo usan tal cual).
var typeIcons = map[MedicationType]string{
	TypeTablet:    "https://cdn-icons-png.flaticon.com/128/2800/2800586.png",
	TypeSyrup:     "https://cdn-icons-png.flaticon.com/128/11496/11496783.png",
	TypeInjection: "https://cdn-icons-png.flaticon.com/128/5341/5341565.png",
	TypeCapsule:   "https://cdn-icons-png.flaticon.com/128/2616/2616687.png",
	TypeCream:     "https://cdn-icons-png.flaticon.com/128/4967/4967139.png",
	TypeOintment:  "https://cdn-icons-png.flaticon.com/128/8565/8565014.png",
}

func (t MedicationType) Valid() bool {
	_, ok := typeIcons[t]
	return ok
}

func (t MedicationType) IconURL() string {
	return typeIcons[t]
}

// WhenToTake combina momento del día × relación con la comida.
// @Enum morning_before, morning_after, afternoon_before, afternoon_after, evening_before, evening_after, night_before, night_after
type WhenToTake string

const (
	WhenMorningBefore   WhenToTake = "morning_before"
	WhenMorningAfter    WhenToTake = "morning_after"
	WhenAfternoonBefore WhenToTake = "afternoon_before"
	WhenAfternoonAfter  WhenToTake = "afternoon_after"
	WhenEveningBefore   WhenToTake = "evening_before"
	WhenEveningAfter    WhenToTake = "evening_after"
	WhenNightBefore     WhenToTake = "night_before"
	WhenNightAfter      WhenToTake = "night_after"
)

var whenToTakeValues = map[WhenToTake]struct{}{
	WhenMorningBefore:   {},
	WhenMorningAfter:    {},
	WhenAfternoonBefore: {},
	WhenAfternoonAfter:  {},
	WhenEveningBefore:   {},
	WhenEveningAfter:    {},
	WhenNightBefore:     {},
	WhenNightAfter:      {},
}

func (w WhenToTake) Valid() bool {
	_, ok := whenToTakeValues[w]
	return ok
}

// ActionStatus es el resultado de un check-in.
// @Enum taken, missed
type ActionStatus string

const (
	StatusTaken  ActionStatus = "taken"
	StatusMissed ActionStatus = "missed"
)

func (s ActionStatus) Valid() bool {
	return s == StatusTaken || s == StatusMissed
}
