package content

import "github.com/soulful-academy/chakra-report/internal/models"

// explanations describe what each centre holds, independent of status.
var explanations = map[models.Chakra]string{
	models.ChakraRoot: "Root holds safety, tribe, money, and body trust. It is formed by childhood home situation, " +
		"parents' money beliefs and how much stability you felt growing up.",
	models.ChakraSacral: "Sacral is the emotional water centre. It holds relationships, receiving, sexuality and your ability " +
		"to enjoy life without guilt.",
	models.ChakraSolar: "Solar is personal power, pricing, visibility and the right to act. Many coaches and healers have wounded solar " +
		"because they were judged when they shined.",
	models.ChakraHeart: "Heart is love, forgiveness, self-worth and the bridge between spiritual and physical. " +
		"Over-givers usually have a tired heart.",
	models.ChakraThroat: "Throat is expression, boundaries, selling, teaching, and saying no. " +
		"If expression was not safe in childhood, this chakra will hold back.",
	models.ChakraThirdEye: "Third Eye is clarity, intuition, vision and your inner GPS. Overthinking and spiritual doubt sit here.",
	models.ChakraCrown: "Crown is higher connection, faith, surrender, divine downloads. " +
		"When strong, it gives guidance. When weak, person feels alone.",
}

var statusGuidance = map[models.Status]string{
	models.StatusBalanced:   "Currently flowing well. Maintain with daily meditation and gratitude.",
	models.StatusWeak:       "Shows mild fatigue. Client may be doing too much for others. Add energy hygiene.",
	models.StatusBlocked:    "This is the main healing focus. There is an old story, trauma or belief sitting here.",
	models.StatusOveractive: "Energy is pushing too hard here. Bring grounding, forgiveness and physical rituals.",
}

type table map[models.Chakra]map[models.Status]string

var notesTable = table{
	models.ChakraRoot: {
		models.StatusBalanced:   "Feels safe in the body and in daily life. Money and home feel stable.",
		models.StatusWeak:       "Some worry about money or the future. Sleep or energy may dip when routines change.",
		models.StatusBlocked:    "Fear and survival stress are present. Possible money blocks, restlessness or feeling unsupported by family.",
		models.StatusOveractive: "Holding on too tightly to control, security or material things. Resistance to change.",
	},
	models.ChakraSacral: {
		models.StatusBalanced:   "Enjoys life, creativity and relationships. Receives without guilt.",
		models.StatusWeak:       "Creativity and pleasure are low. Tends to give more than receive.",
		models.StatusBlocked:    "Emotions feel stuck or numb. Guilt around pleasure, intimacy or receiving money.",
		models.StatusOveractive: "Emotional ups and downs, attachment to partners or cravings driving choices.",
	},
	models.ChakraSolar: {
		models.StatusBalanced:   "Confident, takes action, prices work fairly and is comfortable being seen.",
		models.StatusWeak:       "Self-doubt before acting. Procrastination or undercharging shows up.",
		models.StatusBlocked:    "Low confidence, fear of judgement and difficulty making decisions. Gives power away.",
		models.StatusOveractive: "Pushes hard, needs control, may feel burnt out or irritated when others are slow.",
	},
	models.ChakraHeart: {
		models.StatusBalanced:   "Open, loving and forgiving. Gives and receives in balance.",
		models.StatusWeak:       "Tired heart from over-giving. Self-love is lower than love for others.",
		models.StatusBlocked:    "Old hurt or grief held here. Difficulty trusting, forgiving or letting love in.",
		models.StatusOveractive: "People-pleasing and rescuing. Loses self in others' needs.",
	},
	models.ChakraThroat: {
		models.StatusBalanced:   "Speaks clearly, sets boundaries and expresses needs with ease.",
		models.StatusWeak:       "Hesitates to speak up. Some words are swallowed to keep the peace.",
		models.StatusBlocked:    "Unspoken truth and resentment build up. Fear of selling, teaching or saying no.",
		models.StatusOveractive: "Talks over others or over-explains. Words used to control or defend.",
	},
	models.ChakraThirdEye: {
		models.StatusBalanced:   "Clear intuition and vision. Trusts inner guidance.",
		models.StatusWeak:       "Intuition is present but doubted. Some mental fog.",
		models.StatusBlocked:    "Confusion about direction, overthinking and disconnection from inner knowing.",
		models.StatusOveractive: "Lives in the head. Many visions, little grounding; headaches or restless sleep.",
	},
	models.ChakraCrown: {
		models.StatusBalanced:   "Feels connected, guided and held by something greater.",
		models.StatusWeak:       "Faith comes and goes. Spiritual practice has become irregular.",
		models.StatusBlocked:    "Feels alone or cut off from guidance. Spiritual doubt or cynicism.",
		models.StatusOveractive: "Escapes into spiritual ideas and neglects the body and daily life.",
	},
}

var remediesTable = table{
	models.ChakraRoot: {
		models.StatusBalanced:   "Keep grounding: barefoot walks, root breathing and a simple daily routine.",
		models.StatusWeak:       "Grounding meditation, red foods, money journaling and Reiki on the root.",
		models.StatusBlocked:    "Ho'oponopono 108x on parents and money, inner child work, daily grounding cord visualisation.",
		models.StatusOveractive: "Practise letting go: decluttering, gentle movement and trust affirmations.",
	},
	models.ChakraSacral: {
		models.StatusBalanced:   "Keep creative play, dance and time near water.",
		models.StatusWeak:       "Hip-opening yoga, orange colour therapy and one joyful activity each day.",
		models.StatusBlocked:    "Inner child healing, forgiveness of past partners, sacral Reiki and receiving practice.",
		models.StatusOveractive: "Emotional journaling, healthy boundaries in relationships and calming water rituals.",
	},
	models.ChakraSolar: {
		models.StatusBalanced:   "Keep setting goals and celebrating small wins.",
		models.StatusWeak:       "Power breathing, yellow colour therapy and one bold visible action each week.",
		models.StatusBlocked:    "Release old judgement with Ho'oponopono, confidence affirmations and solar Reiki.",
		models.StatusOveractive: "Rest, delegate, and soften control with forgiveness practice.",
	},
	models.ChakraHeart: {
		models.StatusBalanced:   "Keep gratitude journaling and acts of kindness, including towards self.",
		models.StatusWeak:       "Self-love mirror work, green colour therapy and saying no to one extra task.",
		models.StatusBlocked:    "Forgiveness letters, heart Reiki, grief release and Ho'oponopono 108x.",
		models.StatusOveractive: "Boundaries practice and receiving care from others without guilt.",
	},
	models.ChakraThroat: {
		models.StatusBalanced:   "Keep journaling, chanting and honest conversations.",
		models.StatusWeak:       "Humming or chanting, blue colour therapy and speaking one truth each day.",
		models.StatusBlocked:    "Write unsent letters, throat Reiki, inner child work around being heard.",
		models.StatusOveractive: "Mindful listening, silence practice and pausing before responding.",
	},
	models.ChakraThirdEye: {
		models.StatusBalanced:   "Keep meditation and dream journaling.",
		models.StatusWeak:       "Candle gazing, indigo colour therapy and less screen time before bed.",
		models.StatusBlocked:    "Third eye meditation, intuition journaling and releasing spiritual doubt.",
		models.StatusOveractive: "Ground the visions: nature walks, body movement and one practical step per idea.",
	},
	models.ChakraCrown: {
		models.StatusBalanced:   "Keep prayer, silence and connection to your higher self.",
		models.StatusWeak:       "Daily prayer or surrender practice and violet light visualisation.",
		models.StatusBlocked:    "Crown Reiki, guided meditation for divine connection and gratitude to the universe.",
		models.StatusOveractive: "Balance spirit with body: grounding, healthy meals and daily chores.",
	},
}

var crystalsTable = table{
	models.ChakraRoot: {
		models.StatusBalanced:   "Red Jasper to maintain stability.",
		models.StatusWeak:       "Red Jasper, Hematite - carry in pocket for daily grounding.",
		models.StatusBlocked:    "Black Tourmaline, Smoky Quartz, Hematite - place at feet during meditation.",
		models.StatusOveractive: "Smoky Quartz, Bloodstone - to release control and fear.",
	},
	models.ChakraSacral: {
		models.StatusBalanced:   "Carnelian to keep creativity flowing.",
		models.StatusWeak:       "Carnelian, Orange Calcite - wear near the navel.",
		models.StatusBlocked:    "Carnelian, Moonstone, Sunstone - place on lower belly in healing sessions.",
		models.StatusOveractive: "Moonstone, Rose Quartz - to calm emotional waves.",
	},
	models.ChakraSolar: {
		models.StatusBalanced:   "Citrine to keep confidence bright.",
		models.StatusWeak:       "Citrine, Yellow Jasper - keep on work desk.",
		models.StatusBlocked:    "Citrine, Tiger's Eye, Pyrite - place on the solar plexus and in wallet.",
		models.StatusOveractive: "Yellow Calcite, Amethyst - to soften pushing energy.",
	},
	models.ChakraHeart: {
		models.StatusBalanced:   "Rose Quartz to keep the heart open.",
		models.StatusWeak:       "Rose Quartz, Green Aventurine - wear as a pendant.",
		models.StatusBlocked:    "Rose Quartz, Rhodonite, Malachite - place on the chest during forgiveness work.",
		models.StatusOveractive: "Green Aventurine, Prehnite - for healthy boundaries.",
	},
	models.ChakraThroat: {
		models.StatusBalanced:   "Blue Lace Agate to keep expression clear.",
		models.StatusWeak:       "Blue Lace Agate, Aquamarine - wear near the throat.",
		models.StatusBlocked:    "Lapis Lazuli, Sodalite, Aquamarine - hold while speaking affirmations aloud.",
		models.StatusOveractive: "Amazonite, Blue Calcite - to calm speech and listen more.",
	},
	models.ChakraThirdEye: {
		models.StatusBalanced:   "Amethyst to support intuition.",
		models.StatusWeak:       "Amethyst, Sodalite - keep under pillow.",
		models.StatusBlocked:    "Lapis Lazuli, Labradorite, Amethyst - place on forehead in meditation.",
		models.StatusOveractive: "Fluorite, Smoky Quartz - to clear mental overload and ground visions.",
	},
	models.ChakraCrown: {
		models.StatusBalanced:   "Clear Quartz to keep connection strong.",
		models.StatusWeak:       "Clear Quartz, Selenite - place near bed or altar.",
		models.StatusBlocked:    "Selenite, Clear Quartz, Amethyst - place above the head during prayer.",
		models.StatusOveractive: "Black Tourmaline, Smoky Quartz - to bring spirit back into the body.",
	},
}

var auraTexts = map[models.AuraColor]string{
	models.AuraRed: "Your field is practical, grounded and action oriented. Red/Deep Red often shows a person " +
		"who had to become strong early in life and now carries physical willpower. When balanced, " +
		"this aura can create money, protect the family and finish work. When stressed, it can slip " +
		"into anger, impatience or a 'I must do everything' pattern.",
	models.AuraOrange: "Your aura shows creativity and emotional expression. This is the business-and-joy color. " +
		"Orange people like to build, enjoy, travel, teach. If the sacral is weak, this same color " +
		"can show emotional ups and downs or attraction to unavailable partners.",
	models.AuraYellow: "Yellow is sunny, curious, learning, young-at-heart. This aura likes to learn tools, join programs, " +
		"and teach others. When the solar plexus is tired, yellow can overthink and procrastinate.",
	models.AuraGreen: "Green is the teacher-healer field. It belongs to people who want harmony in the family and community. " +
		"They pick up emotions easily. They must protect their heart and not overgive.",
	models.AuraBlue: "Blue is caring, devotional, service-based. This aura type speaks from the heart and wants to help. " +
		"But if the throat is blocked, words stay inside and resentment builds.",
	models.AuraIndigo: "Indigo is intuitive, inner-knowing, deep-feeling. It belongs to sensitives, empaths and spiritual leaders. " +
		"They must ground daily so that intuition can become action.",
	models.AuraViolet: "Violet/White is spiritual, visionary and future-oriented. This field belongs to people who are called " +
		"to lead energy work, healing circles or consciousness projects. Grounding, money rituals and body work " +
		"must be added so the vision can enter matter.",
}

const auraFallback = "Your aura reflects sensitivity, awareness and a call to live from your higher self."

var auraSizeTexts = map[string]string{
	"large": "You currently radiate a powerful field. People can feel you when you enter a room. " +
		"Use this for coaching, healing sessions and leadership. Protect your field after group work.",
	"medium": "You are well resourced for day-to-day life. With small upgrades in grounding and breath " +
		"you can open into an even wider presence.",
	"small": "Energy is a bit inward right now. This happens after emotional phases or overwork. " +
		"Daily energy hygiene, hydration and nature will open the field again.",
}

const (
	// DefaultFollowUp is printed when the practitioner leaves the follow-up plan blank.
	DefaultFollowUp = "Next 7 days: 108x Ho'oponopono on the main person/event, " +
		"5-minute chakra breathing, 1 bold action in money/relationship."

	// DefaultAffirmations is printed when no affirmations were entered.
	DefaultAffirmations = "I am safe. I am allowed to receive. My power is safe. My heart is open. " +
		"I speak with clarity. I trust my inner guidance. I walk with the Divine."
)
