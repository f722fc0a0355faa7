package sampledata

var firstNames = []string{
	"Amara", "Kwame", "Zola", "Thabo", "Nia", "Kofi", "Amina", "Tendai",
	"Makena", "Jabari", "Zuri", "Mandla", "Aisha", "Sefu", "Nala", "Kito",
	"Imani", "Jelani", "Safiya", "Tafari", "Asha", "Chike", "Dalila", "Faraji",
	"Eshe", "Gamba", "Hasina", "Kamau", "Layla", "Mosi", "Odion",
	"Rehema", "Simba", "Taraji", "Uzoma", "Zalika", "Bakari", "Chioma", "Dayo",
}

var lastNames = []string{
	"Mensah", "Okafor", "Nkosi", "Diallo", "Abebe", "Mwangi", "Ibrahim", "Moyo",
	"Ndlovu", "Osei", "Kimani", "Dlamini", "Afolayan", "Banda", "Chukwu", "Diop",
	"Eze", "Gueye", "Hassan", "Jalloh", "Kone", "Lumumba", "Mutombo", "Nwosu",
	"Okoro", "Patel", "Ruto", "Sow", "Toure", "Usman", "Wanjiku", "Yeboah",
	"Zuma", "Addo", "Bello", "Cisse", "Dube", "Egwu", "Fofana", "Gicheru",
}

var companies = []string{
	"Safaricom", "MTN Group", "Dangote Industries", "Ecobank", "Jumia",
	"Naspers", "Sonangol", "Sasol", "Oando", "Equity Bank", "Zenith Bank",
	"Maroc Telecom", "Attijariwafa Bank", "Shoprite", "Massmart", "Nando's",
	"Guaranty Trust Bank", "Econet Wireless", "Sanlam", "Old Mutual",
	"African Rainbow Minerals", "Woolworths Holdings", "Pick n Pay",
	"Vodacom", "Telkom SA", "Standard Bank", "FirstRand", "Nedbank",
	"Mediclinic International", "Discovery Limited", "Aspen Pharmacare",
	"Life Healthcare", "Netcare", "Clicks Group", "Truworths", "Mr Price Group",
	"Foschini Group",
}

var positions = []string{
	"CEO", "CFO", "CTO", "COO", "Marketing Director", "Sales Manager",
	"HR Director", "Operations Manager", "IT Manager", "Finance Director",
	"Business Development Manager", "Project Manager", "Product Manager",
	"Customer Success Manager", "Regional Director", "Branch Manager",
	"Department Head", "Team Lead", "Senior Analyst", "Research Director",
}

// Templates use {department}, {service}, {percentage}, {metric},
// {timeframe}, {country} and {industry}.
var templates = []string{
	"SynapseIQ has transformed our {department} operations. Their {service} solution helped us achieve {percentage}% improvement in {metric}. The team was professional and responsive throughout the implementation.",
	"Working with SynapseIQ was a game-changer for our business. Their {service} platform integrated seamlessly with our existing systems, and the results were immediate. We've seen {percentage}% increase in {metric} since implementation.",
	"I can't recommend SynapseIQ enough! Their {service} services have revolutionized how we approach {department} challenges in the African market. The ROI has been exceptional with {percentage}% boost in {metric}.",
	"SynapseIQ understood our unique challenges as an African business. Their {service} solution was tailored to our specific needs, resulting in {percentage}% improvement in {metric} within just {timeframe} months.",
	"The expertise that SynapseIQ brought to our {department} project was invaluable. Their {service} implementation exceeded our expectations, delivering a {percentage}% enhancement in {metric} and transforming our business processes.",
	"SynapseIQ's {service} platform has been instrumental in our digital transformation journey. We've experienced a {percentage}% increase in {metric}, and their support team has been exceptional throughout.",
	"As a growing business in {country}, we needed a partner who understood the local market. SynapseIQ delivered a {service} solution that addressed our specific challenges, resulting in {percentage}% improvement in {metric}.",
	"The team at SynapseIQ went above and beyond in implementing their {service} solution for our company. We've seen remarkable results - {percentage}% increase in {metric} and significant improvements in customer satisfaction.",
	"SynapseIQ's {service} platform has been a critical component of our success in the competitive {industry} sector. Their solution helped us achieve a {percentage}% boost in {metric} while reducing operational costs.",
	"I'm impressed by SynapseIQ's deep understanding of the African business landscape. Their {service} solution was perfectly aligned with our needs, helping us achieve {percentage}% growth in {metric} despite market challenges.",
}

var (
	departments = []string{"marketing", "sales", "customer service", "operations", "finance", "IT", "supply chain", "HR", "R&D", "logistics"}
	services    = []string{"AI-powered analytics", "machine learning", "natural language processing", "predictive analytics", "business intelligence", "chatbot", "data visualization", "automated reporting", "sentiment analysis", "recommendation engine"}
	metrics     = []string{"productivity", "revenue", "customer satisfaction", "operational efficiency", "cost savings", "conversion rate", "customer retention", "market share", "ROI", "employee satisfaction"}
	countries   = []string{"Kenya", "Nigeria", "South Africa", "Ghana", "Ethiopia", "Tanzania", "Egypt", "Morocco", "Rwanda", "Senegal"}
	industries  = []string{"fintech", "agriculture", "healthcare", "retail", "telecommunications", "energy", "manufacturing", "education", "transportation", "hospitality"}
	timeframes  = []string{"3", "6", "9", "12"}
)
