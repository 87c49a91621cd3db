package pricing

// fallbackPrice is a typical grocery-store price for an item the
// pantry does not hold (or holds without a known price), together
// with the unit the price is quoted in.
type fallbackPrice struct {
	Price float64
	Unit  string
}

// defaultPrice is used for items the table does not know, treated as
// a per-piece price.
const defaultPrice = 3.00

// fallbackPrices is keyed by lower-cased ingredient name. Loaded once
// at process start and never mutated.
var fallbackPrices = map[string]fallbackPrice{
	// dairy & eggs
	"milk":           {3.50, "gallon"},
	"eggs":           {4.00, "dozen"},
	"butter":         {4.50, "pound"},
	"cheese":         {5.00, "pound"},
	"cheddar":        {5.50, "pound"},
	"mozzarella":     {5.00, "pound"},
	"parmesan":       {9.00, "pound"},
	"cream cheese":   {3.00, "pound"},
	"sour cream":     {2.50, "pint"},
	"heavy cream":    {4.00, "pint"},
	"yogurt":         {3.50, "quart"},
	"almond milk":    {3.50, "quart"},
	"coconut milk":   {2.50, "pint"},

	// baking & dry goods
	"flour":           {2.50, "pound"},
	"sugar":           {3.00, "pound"},
	"brown sugar":     {3.00, "pound"},
	"baking soda":     {1.00, "pound"},
	"baking powder":   {2.00, "pound"},
	"yeast":           {1.50, "ounce"},
	"vanilla extract": {4.00, "ounce"},
	"cocoa powder":    {4.00, "pound"},
	"chocolate chips": {3.50, "pound"},
	"honey":           {6.00, "pound"},
	"maple syrup":     {8.00, "pint"},
	"oats":            {2.50, "pound"},
	"cereal":          {4.00, "pound"},
	"pasta":           {2.50, "lb"},
	"spaghetti":       {2.50, "lb"},
	"rice":            {2.00, "pound"},
	"quinoa":          {5.00, "pound"},
	"lentils":         {2.50, "pound"},
	"black beans":     {1.50, "pound"},
	"chickpeas":       {1.50, "pound"},
	"bread":           {3.00, "piece"},
	"tortilla":        {3.50, "dozen"},
	"breadcrumbs":     {2.50, "pound"},

	// meat & seafood
	"chicken breast": {4.50, "pound"},
	"chicken thighs": {3.50, "pound"},
	"ground beef":    {5.50, "pound"},
	"steak":          {10.00, "pound"},
	"pork chops":     {4.50, "pound"},
	"bacon":          {6.50, "pound"},
	"ham":            {5.00, "pound"},
	"turkey":         {4.00, "pound"},
	"sausage":        {4.50, "pound"},
	"salmon":         {10.00, "pound"},
	"shrimp":         {9.00, "pound"},
	"tuna":           {2.00, "piece"},
	"tofu":           {2.50, "pound"},

	// produce
	"onion":       {1.00, "pound"},
	"garlic":      {0.50, "piece"},
	"tomato":      {2.00, "pound"},
	"potato":      {1.00, "pound"},
	"carrot":      {1.00, "pound"},
	"celery":      {2.00, "piece"},
	"lettuce":     {2.00, "piece"},
	"spinach":     {3.00, "pound"},
	"broccoli":    {2.00, "pound"},
	"bell pepper": {1.50, "piece"},
	"mushroom":    {3.50, "pound"},
	"cucumber":    {1.00, "piece"},
	"zucchini":    {1.50, "pound"},
	"corn":        {0.75, "piece"},
	"peas":        {2.00, "pound"},
	"green beans": {2.50, "pound"},
	"avocado":     {1.50, "piece"},
	"lemon":       {0.75, "piece"},
	"lime":        {0.50, "piece"},
	"apple":       {2.00, "pound"},
	"banana":      {0.60, "pound"},
	"orange":      {1.50, "pound"},
	"strawberry":  {4.00, "pound"},
	"blueberry":   {5.00, "pound"},
	"ginger":      {4.00, "pound"},

	// oils, condiments & sauces
	"olive oil":     {10.00, "quart"},
	"vegetable oil": {4.00, "quart"},
	"vinegar":       {3.00, "quart"},
	"soy sauce":     {3.50, "pint"},
	"ketchup":       {3.00, "pint"},
	"mustard":       {2.50, "pint"},
	"mayonnaise":    {4.50, "quart"},
	"hot sauce":     {3.00, "cup"},
	"salsa":         {3.50, "pint"},
	"peanut butter": {3.50, "pound"},
	"jam":           {3.50, "pound"},
	"tomato sauce":  {2.00, "pint"},
	"tomato paste":  {1.00, "cup"},
	"broth":         {2.50, "quart"},

	// spices
	"salt":         {1.00, "pound"},
	"pepper":       {4.00, "ounce"},
	"basil":        {2.00, "ounce"},
	"oregano":      {2.00, "ounce"},
	"thyme":        {2.00, "ounce"},
	"rosemary":     {2.00, "ounce"},
	"cinnamon":     {2.50, "ounce"},
	"cumin":        {2.50, "ounce"},
	"paprika":      {2.50, "ounce"},
	"chili powder": {2.50, "ounce"},
}
