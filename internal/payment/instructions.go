package payment

import "strings"

var instructionMap = map[Method][]string{
	MethodCOD: {
		"Your order will be shipped to the delivery address",
		"Prepare {{amount}} in cash before the courier arrives",
		"Check that the amount matches the order total",
		"Pay the courier directly on delivery",
		"Keep the payment receipt from the courier",
	},

	MethodBankTransfer: {
		"Open your banking app or visit the nearest branch",
		"Transfer {{amount}} to the account shown on the order page",
		"Use the order number {{order_number}} as the transfer note",
		"Payment is confirmed within one business day",
		"Keep the transfer receipt until the order is confirmed",
	},

	MethodMomo: {
		"Open the MoMo app",
		"Make sure your balance covers {{amount}}",
		"Scan the QR code shown on the order page",
		"Confirm the payment with your MoMo PIN",
	},

	MethodZaloPay: {
		"Open the ZaloPay app",
		"Make sure your balance covers {{amount}}",
		"Scan the QR code shown on the order page",
		"Confirm the payment with your ZaloPay PIN",
	},

	MethodPayPal: {
		"Sign in to your PayPal account",
		"Review the payment of {{amount}} for order {{order_number}}",
		"Confirm the payment",
		"You will be redirected back to the store when done",
	},
}

// GetInstructions returns the step-by-step payment guide for a method.
func GetInstructions(method Method) []string {
	if steps, ok := instructionMap[method]; ok {
		return steps
	}
	return []string{
		"Follow the payment instructions shown on this page",
	}
}

type InstructionVars map[string]string

// InjectVariables replaces {{placeholders}} in instruction steps.
func InjectVariables(steps []string, vars InstructionVars) []string {
	result := make([]string, 0, len(steps))
	for _, step := range steps {
		updated := step
		for key, value := range vars {
			updated = strings.ReplaceAll(updated, "{{"+key+"}}", value)
		}
		result = append(result, updated)
	}
	return result
}
