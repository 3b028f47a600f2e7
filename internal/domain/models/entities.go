package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BusinessUnit identifies which of the two operations a record belongs to.
type BusinessUnit string

const (
	UnitGalpao        BusinessUnit = "galpao"
	UnitDistribuidora BusinessUnit = "distribuidora"
)

// Label returns the display name used on screen and in reports.
func (u BusinessUnit) Label() string {
	switch u {
	case UnitDistribuidora:
		return "Distribuidora"
	default:
		return "Galpão"
	}
}

// Valid reports whether u is one of the known business units.
func (u BusinessUnit) Valid() bool {
	return u == UnitGalpao || u == UnitDistribuidora
}

// Sale is a document from the "vendas" collection. The bson tags keep the
// field names written by the sales page.
type Sale struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	NumeroVenda string             `bson:"numeroVenda,omitempty"`
	NomeCliente string             `bson:"nomeCliente,omitempty"`
	Subtotal    float64            `bson:"subtotal,omitempty"`
	Desconto    float64            `bson:"desconto,omitempty"`
	Total       float64            `bson:"total,omitempty"`
	Status      string             `bson:"status,omitempty"`
	Empresa     BusinessUnit       `bson:"empresa,omitempty"`
	DataVenda   time.Time          `bson:"dataVenda,omitempty"`
}

// Product is a document from the "produtos" collection. Its status is not
// stored: the page keeps an "ativo" boolean and derives ativo/inativo.
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Nome          string             `bson:"nome,omitempty"`
	Descricao     string             `bson:"descricao,omitempty"`
	Categoria     string             `bson:"categoria,omitempty"`
	Unidade       string             `bson:"unidade,omitempty"`
	PrecoCompra   float64            `bson:"precoCompra,omitempty"`
	PrecoVenda    float64            `bson:"precoVenda,omitempty"`
	Estoque       int                `bson:"estoque,omitempty"`
	EstoqueMinimo int                `bson:"estoqueMinimo,omitempty"`
	Ativo         bool               `bson:"ativo,omitempty"`
	Empresa       BusinessUnit       `bson:"empresa,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
}

// Customer is a document from the "clientes" collection.
type Customer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Nome          string             `bson:"nome,omitempty"`
	Documento     string             `bson:"documento,omitempty"`
	Tipo          string             `bson:"tipo,omitempty"` // fisica | juridica
	Status        string             `bson:"status,omitempty"`
	LimiteCredito float64            `bson:"limiteCredito,omitempty"`
	TotalComprado float64            `bson:"totalComprado,omitempty"`
	Empresa       BusinessUnit       `bson:"empresa,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt,omitempty"`
}

// Employee is a document from the "funcionarios" collection. DataAdmissao is
// stored as a plain "2006-01-02" string, which is why the store cannot filter
// it as a date range.
type Employee struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Nome         string             `bson:"nome,omitempty"`
	CPF          string             `bson:"cpf,omitempty"`
	Cargo        string             `bson:"cargo,omitempty"`
	Setor        string             `bson:"setor,omitempty"`
	Salario      float64            `bson:"salario,omitempty"`
	DataAdmissao string             `bson:"dataAdmissao,omitempty"`
	Status       string             `bson:"status,omitempty"`
	Empresa      BusinessUnit       `bson:"empresa,omitempty"`
}

// Transaction is a document from the "movimentacoes" collection.
type Transaction struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	Tipo           string             `bson:"tipo,omitempty"` // entrada | saida
	Categoria      string             `bson:"categoria,omitempty"`
	Descricao      string             `bson:"descricao,omitempty"`
	Valor          float64            `bson:"valor,omitempty"`
	Status         string             `bson:"status,omitempty"`
	DataVencimento time.Time          `bson:"dataVencimento,omitempty"`
	DataPagamento  time.Time          `bson:"dataPagamento,omitempty"`
	Empresa        BusinessUnit       `bson:"empresa,omitempty"`
}
