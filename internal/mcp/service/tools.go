package service

import (
	"github.com/ledgerline/ynab-mcp/internal/mcp/domain"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerBudgetTools(mcpServer *mcp.Server, budgets domain.BudgetAPI, categories domain.CategoryAPI) {
	mcp.AddTool(mcpServer, domain.GetBudgetsTool(), domain.GetBudgetsHandler(budgets))
	mcp.AddTool(mcpServer, domain.GetCategoriesTool(), domain.GetCategoriesHandler(budgets, categories))
}

func registerAccountTools(mcpServer *mcp.Server, budgets domain.BudgetAPI, accounts domain.AccountAPI) {
	mcp.AddTool(mcpServer, domain.GetAccountBalanceTool(), domain.GetAccountBalanceHandler(budgets, accounts))
}

func registerTransactionTools(mcpServer *mcp.Server, budgets domain.BudgetAPI, transactions domain.TransactionAPI, categories domain.CategoryAPI, payees domain.PayeeAPI, notify domain.ResourceUpdateNotifier) {
	mcp.AddTool(mcpServer, domain.CreateTransactionTool(), domain.CreateTransactionHandler(budgets, transactions, categories, payees, notify))
	mcp.AddTool(mcpServer, domain.CategorizeTransactionTool(), domain.CategorizeTransactionHandler(budgets, transactions, categories, notify))
	mcp.AddTool(mcpServer, domain.GetUncategorizedTransactionsTool(), domain.GetUncategorizedTransactionsHandler(budgets, transactions))
	mcp.AddTool(mcpServer, domain.GetTransactionsNeedingAttentionTool(), domain.GetTransactionsNeedingAttentionHandler(budgets, transactions))
}

// registerBudgetResources registers the readable budget listing resource.
func registerBudgetResources(mcpServer *mcp.Server, budgets domain.BudgetAPI) {
	mcpServer.AddResource(domain.BudgetsResource(), domain.BudgetsResourceHandler(budgets))
}

// registerAccountResources registers the readable account listing resource.
func registerAccountResources(mcpServer *mcp.Server, budgets domain.BudgetAPI, accounts domain.AccountAPI) {
	mcpServer.AddResource(domain.AccountsResource(), domain.AccountsResourceHandler(budgets, accounts))
}

// registerTransactionResources registers the per-account transaction listing
// template.
func registerTransactionResources(mcpServer *mcp.Server, budgets domain.BudgetAPI, transactions domain.TransactionAPI) {
	mcpServer.AddResourceTemplate(domain.TransactionsResourceTemplate(), domain.TransactionsResourceHandler(budgets, transactions))
}
