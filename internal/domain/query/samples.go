package query

// SamplePrompts exercises every category. The server self check and the
// CLI demo both run through it.
var SamplePrompts = []string{
	"Hi there!",
	"Thank you for your help!",
	"Good morning, Sadhak!",
	"You're awesome!",
	"What's the mode of these numbers: 1, 2, 3, 3, 4, 4, 5, 5, 5?",
	"Can you find the average of 10, 15, 20, 25, and 30?",
	"What's the sum of 5, 10, 15, 20, and 25?",
	"If I have 100 and subtract 20, 15, and 5, what's left?",
	"Multiply 2, 3, 4, and 5 together.",
	"Divide 100 by 2, then by 5.",
	"What's the most common fruit among: apple, banana, apple, orange, banana, apple?",
	"How many books on average did students read if one read 3, another 5, and a third read 4?",
	"A teacher recorded the number of books read by six students over the summer: " +
		"Student A: 10 books Student B: 15 books Student C: 8 books Student D: 12 books " +
		"Student E: 9 books Student F: 14 books What is the median number of books read by the students?",
	"Calculate 2 + 3 * 4.",
	"What is the result of (8 + 2) / 5?",
	"Evaluate 2x^2 + 3x - 5 when x=3.",
	"Simplify (x^2 + 2x + 1)/(x + 1).",
}
