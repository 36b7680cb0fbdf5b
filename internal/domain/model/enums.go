package model

type UserRole string

const (
	RoleCustomer UserRole = "CUSTOMER"
	RoleAdmin    UserRole = "ADMIN"
)

type Protein string

const (
	ProteinNone         Protein = ""
	ProteinFriedChicken Protein = "FRIED_CHICKEN"
	ProteinGrilledFish  Protein = "GRILLED_FISH"
	ProteinBeef         Protein = "BEEF"
)

type ExtraSide string

const (
	SideFriedPlantain    ExtraSide = "FRIED_PLANTAIN"
	SideColeslaw         ExtraSide = "COLESLAW"
	SideExtraPepperSauce ExtraSide = "EXTRA_PEPPER_SAUCE"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
	PaymentRefunded  PaymentStatus = "REFUNDED"
)

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
	PaymentCard           PaymentMethod = "CARD"
	PaymentBankTransfer   PaymentMethod = "BANK_TRANSFER"
	PaymentWallet         PaymentMethod = "WALLET"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED"
)
