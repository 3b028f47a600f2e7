package mongodb

import "go.mongodb.org/mongo-driver/bson"

func salesFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Empresa != "" {
		filter["empresa"] = q.Empresa
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if r := dateRange(q); r != nil {
		filter["dataVenda"] = r
	}
	return filter
}

func productsFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Empresa != "" {
		filter["empresa"] = q.Empresa
	}
	if r := dateRange(q); r != nil {
		filter["createdAt"] = r
	}
	return filter
}

func customersFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Empresa != "" {
		filter["empresa"] = q.Empresa
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if r := dateRange(q); r != nil {
		filter["createdAt"] = r
	}
	return filter
}

func employeesFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Empresa != "" {
		filter["empresa"] = q.Empresa
	}
	return filter
}

func transactionsFilter(q Query) bson.M {
	filter := bson.M{}
	if q.Empresa != "" {
		filter["empresa"] = q.Empresa
	}
	if q.Status != "" {
		filter["status"] = q.Status
	}
	if r := dateRange(q); r != nil {
		filter["dataVencimento"] = r
	}
	return filter
}

func dateRange(q Query) bson.M {
	r := bson.M{}
	if q.Start != nil {
		r["$gte"] = *q.Start
	}
	if q.End != nil {
		r["$lte"] = *q.End
	}
	if len(r) == 0 {
		return nil
	}
	return r
}
