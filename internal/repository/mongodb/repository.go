package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ecocarvao/backend/internal/domain/models"
)

const (
	collSales        = "vendas"
	collProducts     = "produtos"
	collCustomers    = "clientes"
	collEmployees    = "funcionarios"
	collTransactions = "movimentacoes"
)

// Query carries the constraints a caller wants pushed down to the store.
// Which fields each collection honors depends on what actually lives on its
// documents; the rest stays with the caller as post-fetch predicates.
type Query struct {
	Empresa models.BusinessUnit
	Status  string
	Start   *time.Time
	End     *time.Time
}

// Store defines the read-only access this application needs over the five
// business collections.
type Store interface {
	FindSales(ctx context.Context, q Query) ([]models.Sale, error)
	FindProducts(ctx context.Context, q Query) ([]models.Product, error)
	FindCustomers(ctx context.Context, q Query) ([]models.Customer, error)
	FindEmployees(ctx context.Context, q Query) ([]models.Employee, error)
	FindTransactions(ctx context.Context, q Query) ([]models.Transaction, error)

	CountCustomers(ctx context.Context) (int64, error)
	CountProducts(ctx context.Context) (int64, error)
	CountLowStockProducts(ctx context.Context) (int64, error)
}

// MongoStore implements Store against MongoDB.
type MongoStore struct {
	client *mongo.Client
	dbName string
}

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, uri string, dbName string) (*MongoStore, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{client: client, dbName: dbName}, nil
}

// Close closes the MongoDB connection.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// FindSales pushes empresa, status and the dataVenda range to the store.
func (s *MongoStore) FindSales(ctx context.Context, q Query) ([]models.Sale, error) {
	filter := salesFilter(q)
	opts := options.Find().SetSort(bson.D{{Key: "dataVenda", Value: -1}})

	cur, err := s.collection(collSales).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find sales: %w", err)
	}

	var sales []models.Sale
	if err := cur.All(ctx, &sales); err != nil {
		return nil, fmt.Errorf("decode sales: %w", err)
	}
	return sales, nil
}

// FindProducts pushes empresa and the createdAt range to the store. Status is
// derived from the ativo boolean and must be filtered by the caller.
func (s *MongoStore) FindProducts(ctx context.Context, q Query) ([]models.Product, error) {
	filter := productsFilter(q)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := s.collection(collProducts).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}

	var products []models.Product
	if err := cur.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return products, nil
}

// FindCustomers pushes empresa, status and the createdAt range to the store.
func (s *MongoStore) FindCustomers(ctx context.Context, q Query) ([]models.Customer, error) {
	filter := customersFilter(q)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := s.collection(collCustomers).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}

	var customers []models.Customer
	if err := cur.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return customers, nil
}

// FindEmployees pushes only empresa. Admission dates are stored as plain
// strings, so date-range and status filtering stay with the caller.
func (s *MongoStore) FindEmployees(ctx context.Context, q Query) ([]models.Employee, error) {
	filter := employeesFilter(q)

	cur, err := s.collection(collEmployees).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}

	var employees []models.Employee
	if err := cur.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

// FindTransactions pushes empresa, status and the dataVencimento range.
func (s *MongoStore) FindTransactions(ctx context.Context, q Query) ([]models.Transaction, error) {
	filter := transactionsFilter(q)
	opts := options.Find().SetSort(bson.D{{Key: "dataVencimento", Value: -1}})

	cur, err := s.collection(collTransactions).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find transactions: %w", err)
	}

	var transactions []models.Transaction
	if err := cur.All(ctx, &transactions); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}
	return transactions, nil
}

// CountCustomers returns the total number of customer documents.
func (s *MongoStore) CountCustomers(ctx context.Context) (int64, error) {
	n, err := s.collection(collCustomers).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count customers: %w", err)
	}
	return n, nil
}

// CountProducts returns the total number of product documents.
func (s *MongoStore) CountProducts(ctx context.Context) (int64, error) {
	n, err := s.collection(collProducts).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStockProducts counts active products at or below their minimum
// stock level. Comparing two document fields needs $expr.
func (s *MongoStore) CountLowStockProducts(ctx context.Context) (int64, error) {
	filter := bson.M{
		"ativo": true,
		"$expr": bson.M{"$lte": bson.A{"$estoque", "$estoqueMinimo"}},
	}
	n, err := s.collection(collProducts).CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("count low stock products: %w", err)
	}
	return n, nil
}
