package task

import "github.com/ovaphlow/pitchfork/service-quest-go/internal/task/entity"

// DefaultCatalog is inserted on first start when the tasks table is empty.
var DefaultCatalog = []entity.Task{
	{Name: "Aprender C", Description: "Estudo básico de C", Points: 5},
	{Name: "Aprender POO", Description: "Conceitos de Programação Orientada a Objetos", Points: 15},
	{Name: "Estudo de Algoritmos", Description: "Análise e implementação de algoritmos", Points: 10},
	{Name: "Introdução a Python", Description: "Aprender Python básico", Points: 8},
	{Name: "Banco de Dados SQL", Description: "Fundamentos de bancos de dados SQL", Points: 12},
}
