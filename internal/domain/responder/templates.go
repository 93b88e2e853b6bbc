package responder

import (
	"fmt"
	"strings"

	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/common"
	"github.com/GriffinCanCode/sadhak/backend/internal/providers/math/statistics"
)

// Fixed replies
const (
	GreetingReply     = "Hello! I'm Sadhak Calculator, your AI math assistant. How can I help you with calculations today?"
	ComplimentReply   = "Thank you! I'm glad I could help. Math can be challenging, but it's also fascinating. Is there anything else you'd like to explore?"
	UnknownReply      = "I'm not quite sure how to interpret your query. Could you please rephrase it or specify the type of calculation you want to perform? For example, you could ask about calculating the mean, median, mode, or perform basic arithmetic operations like addition, subtraction, multiplication, or division. I'm here to help with a wide range of mathematical calculations!"
	DivideByZeroReply = "I apologize, but I can't divide by zero. Division by zero is undefined in mathematics. Could you please provide a non-zero divisor?"
)

// Guidance for prompts without enough numbers
const (
	MeanGuidance     = "I'd be happy to help you calculate the mean, but I couldn't find any numbers in your query. Could you please provide some numerical data? For example, you could ask 'What's the mean of 5, 7, 10, 12, and 15?'"
	ModeGuidance     = "I'd be happy to help you find the mode, but I couldn't find any numbers in your query. Could you please provide some numerical data? For example, you could ask 'What's the mode of 1, 2, 2, 3, 3, 3, 4?'"
	MedianGuidance   = "I'd be happy to help you find the median, but I couldn't find any numbers in your query. Could you please provide some numerical data? For example, you could ask 'What's the median of 10, 15, 20, 25, and 30?'"
	SumGuidance      = "I'd be happy to help you calculate the sum, but I couldn't find any numbers in your query. Could you please provide some numerical data? For example, you could ask 'What's the sum of 5, 10, 15, 20, and 25?'"
	SubtractGuidance = "I'd be happy to help you with subtraction, but I need at least two numbers to perform this operation. Could you please provide more numerical data? For example, you could ask 'What's the result of subtracting 15 and 7 from 100?'"
	MultiplyGuidance = "I'd be happy to help you with multiplication, but I couldn't find any numbers in your query. Could you please provide some numerical data? For example, you could ask 'What's the product of 2, 3, 4, and 5?'"
	DivideGuidance   = "I'd be happy to help you with division, but I need at least two numbers to perform this operation. Could you please provide more numerical data? For example, you could ask 'What's the result of dividing 100 by 4 and then by 2?'"
)

func apology(reason string) string {
	return fmt.Sprintf("I apologize, but I encountered an error while processing your query: %s. Could you please check your input and try again? If you're not sure how to phrase your question, feel free to ask for examples of calculations I can perform.", reason)
}

func expressionApology(detail string) string {
	return fmt.Sprintf("I apologize, but I encountered an error while evaluating the expression: %s\n\nCould you please check the expression and try again? Make sure all operations are clearly stated and parentheses are properly balanced. If you're not sure how to format the expression, feel free to ask for examples.", detail)
}

func renderMean(numbers []float64, sum, mean float64) string {
	var b strings.Builder
	b.WriteString("Calculating the Mean\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("To calculate the mean (or average) of a set of numbers, you need to find the central value that represents the dataset. This involves adding up all the numbers and then dividing by the total number of values. The mean provides a measure of central tendency and is useful for understanding the overall distribution of the data.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Sum the Numbers:\n\n")
	b.WriteString("Start by adding all the numbers together:\n\n")
	fmt.Fprintf(&b, "%s = %s\n\n", common.JoinNumbers(numbers, " + "), common.FormatNumber(sum))
	b.WriteString("Count the Numbers:\n\n")
	b.WriteString("Determine how many numbers are in the dataset:\n\n")
	fmt.Fprintf(&b, "n = %d\n\n", len(numbers))
	b.WriteString("Calculate the Mean:\n\n")
	b.WriteString("Divide the sum by the count of numbers:\n\n")
	fmt.Fprintf(&b, "Mean = Sum / Count = %s / %d = %s\n\n", common.FormatNumber(sum), len(numbers), common.FormatFixed(mean, 1))
	b.WriteString("Concept Summary\n")
	b.WriteString("The mean is a measure of central tendency that gives you an average value from a set of numbers. By summing all values and dividing by the number of values, you obtain a single number that represents the center of the dataset. It's a fundamental concept in statistics used to understand the overall distribution and central value of numerical data.")
	return b.String()
}

func renderMode(res statistics.ModeResult) string {
	var b strings.Builder
	b.WriteString("Finding the Mode\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("The mode is the value (or values) that appear most frequently in a dataset. It's particularly useful for understanding the most common or typical value, especially in datasets with discrete values.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Count the Occurrences:\n\n")
	for _, f := range res.Frequencies {
		fmt.Fprintf(&b, "%s appears %d time%s\n", common.FormatNumber(f.Value), f.Count, common.Plural(f.Count))
	}
	fmt.Fprintf(&b, "\nIdentify the Highest Frequency: %d\n\n", res.MaxCount)
	b.WriteString("Determine the Mode(s):\n\n")
	if len(res.Modes) == 1 {
		fmt.Fprintf(&b, "The mode is %s, appearing %d time%s.\n\n", common.FormatNumber(res.Modes[0]), res.MaxCount, common.Plural(res.MaxCount))
	} else {
		fmt.Fprintf(&b, "There are multiple modes: %s, each appearing %d times.\n\n", common.JoinNumbers(res.Modes, ", "), res.MaxCount)
	}
	b.WriteString("Concept Summary\n")
	b.WriteString("The mode is particularly useful when you want to find the most common value in a dataset. It's the only measure of central tendency that can be used with nominal data (categories) as well as numerical data. In some cases, a dataset may have no mode, one mode, or multiple modes, providing insights into the distribution and frequency of values in the data.")
	return b.String()
}

func renderMedian(res statistics.MedianResult) string {
	n := len(res.Sorted)
	var b strings.Builder
	b.WriteString("Finding the Median\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("The median is the middle value in a sorted dataset. It's a robust measure of central tendency, less affected by extreme values or outliers compared to the mean.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Sort the Numbers:\n\n")
	fmt.Fprintf(&b, "First, we arrange the numbers in ascending order: %s\n\n", common.JoinNumbers(res.Sorted, ", "))
	b.WriteString("Find the Middle Value:\n\n")
	if res.Even {
		fmt.Fprintf(&b, "Since we have an even number of values (%d), we take the average of the two middle numbers.\n", n)
		fmt.Fprintf(&b, "The two middle numbers are %s and %s.\n", common.FormatNumber(res.Lower), common.FormatNumber(res.Upper))
		fmt.Fprintf(&b, "Median = (%s + %s) / 2 = %s\n\n", common.FormatNumber(res.Lower), common.FormatNumber(res.Upper), common.FormatNumber(res.Value))
	} else {
		fmt.Fprintf(&b, "Since we have an odd number of values (%d), we take the middle number.\n", n)
		fmt.Fprintf(&b, "The middle number is %s.\n\n", common.FormatNumber(res.Value))
	}
	b.WriteString("Concept Summary\n")
	b.WriteString("The median is particularly useful when dealing with skewed distributions or when you want to find the 'middle' value in a dataset. It's less sensitive to extreme values compared to the mean, making it a good choice for datasets with outliers.")
	return b.String()
}

func renderSum(numbers []float64, total float64) string {
	var b strings.Builder
	b.WriteString("Calculating the Sum\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("The sum is the total obtained by adding all the numbers together. It's a fundamental operation in mathematics used in various calculations and analyses.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Add All Numbers:\n\n")
	fmt.Fprintf(&b, "%s = %s\n\n", common.JoinNumbers(numbers, " + "), common.FormatNumber(total))
	b.WriteString("Concept Summary\n")
	b.WriteString("The sum is useful in many contexts, such as calculating totals in financial statements, finding the total distance traveled in physics problems, or as a step in calculating averages.")
	return b.String()
}

func renderSubtract(numbers []float64, result float64) string {
	first, rest := common.FormatNumber(numbers[0]), numbers[1:]
	var b strings.Builder
	b.WriteString("Performing Subtraction\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("In subtraction, we start with the first number and subtract all subsequent numbers from it.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Step-by-step Process:\n\n")
	fmt.Fprintf(&b, "1. Start with the first number: %s\n", first)
	fmt.Fprintf(&b, "2. Subtract the following numbers: %s\n", common.JoinNumbers(rest, " - "))
	fmt.Fprintf(&b, "3. Perform the calculation: %s - (%s) = %s\n\n", first, common.JoinNumbers(rest, " + "), common.FormatNumber(result))
	b.WriteString("Concept Summary\n")
	b.WriteString("Subtraction is a fundamental operation in mathematics, used to find the difference between values. It's essential in various real-world scenarios, from financial calculations to scientific measurements.")
	return b.String()
}

func renderMultiply(numbers []float64, product float64) string {
	var b strings.Builder
	b.WriteString("Performing Multiplication\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("Multiplication is the process of adding a number to itself a specified number of times. When multiplying multiple numbers, we find the product of all the numbers.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Multiply All Numbers:\n\n")
	fmt.Fprintf(&b, "%s = %s\n\n", common.JoinNumbers(numbers, " × "), common.FormatNumber(product))
	b.WriteString("Concept Summary\n")
	b.WriteString("Multiplication is a fundamental operation in mathematics, often thought of as repeated addition. It's used in various fields, from calculating areas and volumes to more complex applications in physics and engineering.")
	return b.String()
}

func renderDivide(numbers []float64, result float64) string {
	first, divisors := common.FormatNumber(numbers[0]), common.JoinNumbers(numbers[1:], " ÷ ")
	var b strings.Builder
	b.WriteString("Performing Division\n\n")
	b.WriteString("Initial Explanation\n")
	b.WriteString("In division, we start with the first number and divide it by each subsequent number in order.\n\n")
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Step-by-step Process:\n\n")
	fmt.Fprintf(&b, "1. Start with the first number: %s\n", first)
	fmt.Fprintf(&b, "2. Divide by each subsequent number: ÷ %s\n", divisors)
	fmt.Fprintf(&b, "3. Perform the calculation: %s ÷ %s ≈ %s\n\n", first, divisors, common.FormatFixed(result, 4))
	b.WriteString("Concept Summary\n")
	b.WriteString("Division is a fundamental operation in mathematics, used to distribute a quantity into equal parts or to find out how many times one quantity is contained within another. It's the inverse of multiplication and is crucial in various fields, from basic arithmetic to advanced scientific calculations.")
	return b.String()
}

func renderExpression(expr, result string) string {
	var b strings.Builder
	b.WriteString("Evaluating the Expression\n\n")
	b.WriteString("Initial Explanation\n")
	fmt.Fprintf(&b, "We'll evaluate the expression: %s. To solve this, we'll apply mathematical rules and operations in the correct order. This may involve simplifying fractions, combining like terms, or solving for variables.\n\n", expr)
	b.WriteString("Mathematical Solution\n")
	b.WriteString("Step-by-step Evaluation:\n\n")
	fmt.Fprintf(&b, "1. Start with the original expression: %s\n", expr)
	fmt.Fprintf(&b, "2. Apply mathematical rules and simplify: %s\n\n", result)
	b.WriteString("Concept Summary\n")
	b.WriteString("This process of simplification and evaluation is crucial in algebra and calculus. It allows us to reduce complex expressions to their simplest form, making it easier to understand the relationships between variables or to find specific values.")
	return b.String()
}
