package bank

import (
	"errors"
	"fmt"

	"github.com/devicelab-dev/khaos/pkg/khaos"
	"github.com/devicelab-dev/khaos/pkg/verify"
)

type bankCustomer struct {
	bank     *Bank
	customer Customer
}

func givenACustomerWithBankAccount(s khaos.ScenarioBuilder, name string, initialBalance float64) bankCustomer {
	b := khaos.Given(s, "A bank", func() (*Bank, error) { return New(), nil })
	customer := khaos.Given(s, "A customer", khaos.Value(Customer{Name: name}))
	khaos.Given(s, "The customer has a bank account at the bank", func() (AccountSummary, error) {
		return b.CreateAccount(customer, initialBalance)
	})
	return bankCustomer{bank: b, customer: customer}
}

// BankAccountSpecification describes opening accounts and moving money.
type BankAccountSpecification struct {
	khaos.Spec

	Creation  khaos.FeatureDefinition `khaos:"Bank account creation"`
	Movements khaos.FeatureDefinition `khaos:"Bank account deposits and withdrawals"`
}

// NewBankAccountSpecification returns the specification with its features defined.
func NewBankAccountSpecification() *BankAccountSpecification {
	return &BankAccountSpecification{
		Creation:  khaos.Feature(accountCreation),
		Movements: khaos.Feature(depositsAndWithdrawals),
	}
}

func accountCreation(f khaos.FeatureBuilder) {
	f.Scenario("A new bank account is created with an initial balance", func(s khaos.ScenarioBuilder) {
		b := khaos.Given(s, "A bank", func() (*Bank, error) { return New(), nil })
		customer := khaos.Given(s, "A customer", khaos.Value(Customer{Name: "Jim"}))

		account := khaos.When(s, "The customer creates an account at the bank", func() (AccountSummary, error) {
			return b.CreateAccount(customer, 0)
		})

		khaos.ThenExpect(s, "The account has the correct initial balance", 0.0, func(expected float64) (float64, error) {
			return account.Balance, verify.Equal(expected, account.Balance)
		})
	})

	f.Scenario("A customer can only have one account at a bank", func(s khaos.ScenarioBuilder) {
		c := givenACustomerWithBankAccount(s, "Jim", 0)

		create := khaos.DeferredWhen(s, "The customer creates another account at the bank", func() (AccountSummary, error) {
			return c.bank.CreateAccount(c.customer, 0)
		})

		khaos.Assert(s, "The account creation fails", func() error {
			return verify.FailsWith(ErrAccountExists, func() error {
				_, err := create()
				return err
			})
		})
	})
}

type withdrawal struct {
	name           string
	initialBalance float64
	amount         float64
	expectedErr    error
}

func depositsAndWithdrawals(f khaos.FeatureBuilder) {
	f.Scenario("Money is deposited in a bank account", func(s khaos.ScenarioBuilder) {
		c := givenACustomerWithBankAccount(s, "Jim", 0)
		money := khaos.Given(s, "The customer has some money", khaos.Value(5.0))

		khaos.When(s, "The customer deposits the money", func() (AccountSummary, error) {
			return c.bank.Deposit(c.customer, money)
		})

		khaos.ThenExpect(s, "The account has the expected balance", money, func(expected float64) (float64, error) {
			account, err := c.bank.AccountSummary(c.customer)
			if err != nil {
				return 0, err
			}
			return account.Balance, verify.Equal(expected, account.Balance)
		})
	})

	for _, w := range []withdrawal{
		{name: "Money is withdrawn from a bank account", initialBalance: 100, amount: 5},
		{name: "Amount withdrawn must be positive", initialBalance: 100, amount: -5, expectedErr: ErrNegativeAmount},
		{name: "A bank account cannot be overdrawn", initialBalance: 5, amount: 100, expectedErr: ErrInsufficientFunds},
	} {
		f.Scenario(w.name, func(s khaos.ScenarioBuilder) {
			c := givenACustomerWithBankAccount(s, "Jim", w.initialBalance)
			money := khaos.Given(s, "The customer needs some money", khaos.Value(w.amount))

			withdraw := khaos.DeferredWhen(s, "The customer withdraws the money", func() (AccountSummary, error) {
				return c.bank.Withdraw(c.customer, money)
			})

			if w.expectedErr != nil {
				khaos.Assert(s, "The withdrawal fails", func() error {
					return verify.FailsWith(w.expectedErr, func() error {
						_, err := withdraw()
						return err
					})
				})
				return
			}

			khaos.Assert(s, "The withdrawal succeeds", func() error {
				return verify.Succeeds(func() error {
					_, err := withdraw()
					return err
				})
			})
			khaos.ThenExpect(s, "The account has the expected balance", w.initialBalance-money, func(expected float64) (float64, error) {
				account, err := c.bank.AccountSummary(c.customer)
				if err != nil {
					return 0, err
				}
				return account.Balance, verify.Equal(expected, account.Balance)
			})
		})
	}
}

// ExampleSpecification shows tags, lifecycle blocks, scenario clean up and
// pending scenarios.
type ExampleSpecification struct {
	khaos.Spec

	Tagged khaos.FeatureDefinition `khaos:"Tagged Feature"`
	Test   khaos.FeatureDefinition `khaos:"Test Feature"`
}

// NewExampleSpecification returns the specification with its features defined.
func NewExampleSpecification() *ExampleSpecification {
	return &ExampleSpecification{
		Tagged: khaos.Feature(func(f khaos.FeatureBuilder) {
			f.Tagged("ScenarioTag").Scenario("A tagged scenario", func(s khaos.ScenarioBuilder) {
				s.Given("A tagged scenario")
			})
		}, "Tag"),
		Test: khaos.Feature(testFeature),
	}
}

var errBoo = errors.New("boo")

func testFeature(f khaos.FeatureBuilder) {
	f.SetUpFeature(func(g khaos.GivenStepBuilder) {
		khaos.Arrange(g, "Do this once before", func() error { return nil })
	})
	f.CleanUpFeature(func(t khaos.ThenStepBuilder) {
		khaos.Assert(t, "Do this once after", func() error { return nil })
	})
	f.SetUpEachScenario(func(g khaos.GivenStepBuilder) {
		khaos.Arrange(g, "Some setup action is taken", func() error { return nil })
	})
	f.CleanUpEachScenario(func(t khaos.ThenStepBuilder) {
		khaos.Assert(t, "Validate some clean up", func() error { return nil })
	})

	f.Tagged("This is a tag", "and another one", "foo").Scenario("A Tagged Test Scenario", func(s khaos.ScenarioBuilder) {
		s.Given("A tagged Scenario")
	})

	f.Scenario("A Test Scenario", func(s khaos.ScenarioBuilder) {
		khaos.Given(s, "Some Value", khaos.Value(10))
		action := khaos.DeferredWhen(s, "Some When", func() (int, error) { return 0, errBoo })

		khaos.Assert(s, "Should fail", func() error {
			return verify.FailsWith(errBoo, func() error {
				_, err := action()
				return err
			})
		})
	}).CleanUp(func(t khaos.ThenStepBuilder) {
		t.Then("Some cleanup")
	})

	f.Scenario("Another Test Scenario", func(s khaos.ScenarioBuilder) {
		a := khaos.Given(s, "Some value", khaos.Value(10))
		result := khaos.When(s, "Some when", func() (int, error) { return a + 10, nil })
		khaos.ThenExpect(s, "Some then", 20, func(expected int) (int, error) {
			return result, verify.Equal(expected, result)
		})
	})

	for index := 0; index <= 10; index++ {
		f.Scenario(fmt.Sprintf("Parameterized Scenario %d", index), func(s khaos.ScenarioBuilder) {
			if index == 2 {
				s.Pending("")
			}

			khaos.Given(s, "An index", khaos.Value(index))
			result := khaos.When(s, "Adding one to the index", func() (int, error) { return index + 1, nil })
			khaos.Assert(s, "The result has changed", func() error {
				return verify.NotEqual(index, result)
			})
		})
	}
}
